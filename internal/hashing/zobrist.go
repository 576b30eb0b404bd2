package hashing

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Zobrist key tables, filled once from a fixed seed so hashes are stable
// across runs.
var (
	pieceKeys     [2][chess.NumKinds][chess.BoardSize * chess.BoardSize]uint64
	blackToMove   uint64
	castlingKeys  [4]uint64
	enPassantKeys [chess.BoardSize]uint64
)

func init() {
	seed := uint64(0x9e3779b97f4a7c15)
	next := func() uint64 {
		// splitmix64
		seed += 0x9e3779b97f4a7c15
		z := seed
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		return z ^ (z >> 31)
	}
	for c := range pieceKeys {
		for k := range pieceKeys[c] {
			for sq := range pieceKeys[c][k] {
				pieceKeys[c][k][sq] = next()
			}
		}
	}
	blackToMove = next()
	for i := range castlingKeys {
		castlingKeys[i] = next()
	}
	for i := range enPassantKeys {
		enPassantKeys[i] = next()
	}
}

func squareIndex(sq chess.Square) int {
	return (sq.Row-1)*chess.BoardSize + sq.Col - 1
}

// GenerateZobristHash hashes everything that decides the legal moves of a
// position: piece placement, side to move, castling rights and the
// en-passant column. Move counters and hasMoved flags of pieces that cannot
// castle are not part of the hash.
func GenerateZobristHash(pos *chess.Position) uint64 {
	var h uint64
	for _, pc := range pos.Pieces() {
		h ^= pieceKeys[pc.Colour][pc.Kind][squareIndex(pc.Square)]
	}
	if pos.SideToMove() == chess.Black {
		h ^= blackToMove
	}
	rights := pos.Castling()
	for i, held := range []bool{rights.WhiteKingside, rights.WhiteQueenside, rights.BlackKingside, rights.BlackQueenside} {
		if held {
			h ^= castlingKeys[i]
		}
	}
	if ep, ok := pos.EnPassant(); ok {
		h ^= enPassantKeys[ep.Col-1]
	}
	return h
}

// WeakHash is a cheap order-independent checksum of piece placement only,
// used as a second opinion when two Zobrist hashes collide.
func WeakHash(pos *chess.Position) uint32 {
	var h uint32
	for _, pc := range pos.Pieces() {
		v := uint32(pc.Kind)<<8 | uint32(pc.Colour)<<7 | uint32(squareIndex(pc.Square))
		h += v * 2654435761
	}
	return h
}
