package vm

import (
	"crypto/ed25519"
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

// cryptoSha256 pops a length-prefixed word span, hashes the big-endian
// byte expansion of those words, and pushes the 32-byte digest as 4
// words (spec §4.7).
func cryptoSha256(s *Stack) error {
	var digest [32]byte
	err := s.PopLenWords(func(words []types.Word) error {
		digest = sha256.Sum256(bytesFromWords(words))
		return nil
	})
	if err != nil {
		return err
	}
	out := types.Word4FromU8x32(digest)
	return s.Extend(out[:])
}

// cryptoVerifyEd25519 pops a public key (4 words), a signature (8
// words), then a length-prefixed message, and pushes 1/0. A
// structurally malformed key or signature is an error; a failed
// verification is a normal 0 push (spec §7: "verification failure ...
// is surfaced as boolean 0, not an error").
func cryptoVerifyEd25519(s *Stack) error {
	pa, pb, pc, pd, err := s.Pop4()
	if err != nil {
		return err
	}
	pubkeyBytes := types.U8x32FromWord4([4]types.Word{pa, pb, pc, pd})

	sigWords, err := s.Pop8()
	if err != nil {
		return err
	}
	sigBytes := types.U8x64FromWord8(sigWords)

	var valid bool
	err = s.PopLenWords(func(words []types.Word) error {
		message := bytesFromWords(words)
		valid = ed25519.Verify(ed25519.PublicKey(pubkeyBytes[:]), message, sigBytes[:])
		return nil
	})
	if err != nil {
		return err
	}
	return s.Push(boolWord(valid))
}

// cryptoRecoverSecp256k1 pops a 9-word signature blob (64-byte compact
// R||S followed by a 1-byte recovery id, big-endian packed with 7
// trailing padding bytes per spec §6 "Signature encoding"), then a
// 4-word message digest; pushes the recovered 33-byte compressed
// public key packed into 5 words. On recovery failure it pushes five
// zero words as an in-band "no key" signal (spec §4.7).
func cryptoRecoverSecp256k1(s *Stack) error {
	sigWords, err := s.PopN(9)
	if err != nil {
		return err
	}
	da, db, dc, dd, err := s.Pop4()
	if err != nil {
		return err
	}

	sigBlob := bytesFromWords(sigWords)
	rs := sigBlob[:64]
	recoverBit := sigBlob[64]
	if recoverBit > 3 {
		return ErrCryptoInvalidRecoveryID
	}
	digestBytes := types.U8x32FromWord4([4]types.Word{da, db, dc, dd})

	// Decred's RecoverCompact expects the Bitcoin-style compact
	// signature layout: a leading recovery byte (offset by 27)
	// followed by the 64-byte R||S signature.
	compact := make([]byte, 65)
	compact[0] = recoverBit + 27
	copy(compact[1:], rs)

	pubKey, _, recErr := ecdsa.RecoverCompact(compact, digestBytes[:])
	if recErr != nil {
		return s.Extend(make([]types.Word, 5))
	}

	compressed := pubKey.SerializeCompressed()
	var head [32]byte
	copy(head[:], compressed[:32])
	headWords := types.Word4FromU8x32(head)

	var tail [8]byte
	tail[7] = compressed[32]
	tailWord := types.WordFromBytes(tail)

	if err := s.Extend(headWords[:]); err != nil {
		return err
	}
	return s.Push(tailWord)
}

func bytesFromWords(words []types.Word) []byte {
	out := make([]byte, 0, len(words)*8)
	for _, w := range words {
		b := types.BytesFromWord(w)
		out = append(out, b[:]...)
	}
	return out
}
