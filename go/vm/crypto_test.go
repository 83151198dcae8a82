package vm

import (
	"crypto/ed25519"
	"crypto/sha256"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/essential-contributions/essential-base-sub001/go/types"
)

func pushLenPrefixedBytes(t *testing.T, s *Stack, data []byte) {
	t.Helper()
	// Pad to a whole number of words; the VM only reinterprets as many
	// bytes as the message actually needs at the point the length was
	// established by the caller's encoding, mirroring the original
	// byte-from-word expansion used by bytesFromWords.
	padded := make([]byte, ((len(data)+7)/8)*8)
	copy(padded, data)
	var words []types.Word
	for i := 0; i < len(padded); i += 8 {
		var b [8]byte
		copy(b[:], padded[i:i+8])
		words = append(words, types.WordFromBytes(b))
	}
	for _, w := range words {
		if err := s.Push(w); err != nil {
			t.Fatalf("push failed: %v", err)
		}
	}
	if err := s.Push(types.Word(len(words))); err != nil {
		t.Fatalf("push length failed: %v", err)
	}
}

func TestCryptoSha256_MatchesStdlib(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	message := []byte("six times seven")
	pushLenPrefixedBytes(t, s, message)

	if err := cryptoSha256(s); err != nil {
		t.Fatalf("sha256 op failed: %v", err)
	}

	w0, _ := s.Pop()
	w1, _ := s.Pop()
	w2, _ := s.Pop()
	w3, _ := s.Pop()
	got := types.U8x32FromWord4([4]types.Word{w3, w2, w1, w0})

	padded := make([]byte, ((len(message)+7)/8)*8)
	copy(padded, message)
	want := sha256.Sum256(padded)
	if got != want {
		t.Fatalf("digest mismatch:\n got %x\nwant %x", got, want)
	}
}

func TestCryptoVerifyEd25519_RoundTrips(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	message := []byte("predicate witness")
	sig := ed25519.Sign(priv, message)

	s := NewStack()
	defer ReturnStack(s)

	// Pushed in reverse of the op's pop order: message, signature, then
	// the public key on top.
	pushLenPrefixedBytes(t, s, message)

	var sigArr [64]byte
	copy(sigArr[:], sig)
	sigWords := types.Word8FromU8x64(sigArr)
	if err := s.Extend(sigWords[:]); err != nil {
		t.Fatalf("push signature failed: %v", err)
	}

	var pubArr [32]byte
	copy(pubArr[:], pub)
	pubWords := types.Word4FromU8x32(pubArr)
	if err := s.Extend(pubWords[:]); err != nil {
		t.Fatalf("push pubkey failed: %v", err)
	}

	if err := cryptoVerifyEd25519(s); err != nil {
		t.Fatalf("verify op failed: %v", err)
	}
	got, err := s.Pop()
	if err != nil || got != 1 {
		t.Fatalf("expected verification to succeed, got %d err %v", got, err)
	}
}

// pushPackedBytes pads data to a whole number of words and pushes
// them, without a length prefix — used for the fixed-size secp256k1
// signature/recovery-id blob (spec §6: "packed into 9 words").
func pushPackedBytes(t *testing.T, s *Stack, data []byte, numWords int) {
	t.Helper()
	padded := make([]byte, numWords*8)
	copy(padded, data)
	for i := 0; i < len(padded); i += 8 {
		var b [8]byte
		copy(b[:], padded[i:i+8])
		if err := s.Push(types.WordFromBytes(b)); err != nil {
			t.Fatalf("push failed: %v", err)
		}
	}
}

func TestCryptoRecoverSecp256k1_RoundTrips(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	digest := sha256.Sum256([]byte("6 * 7 == 42"))

	compact := ecdsa.SignCompact(priv, digest[:], true)
	if len(compact) != 65 {
		t.Fatalf("sign produced %d bytes, want 65", len(compact))
	}
	// The compact header byte is 27 + recovery id, plus 4 because the
	// signature was made for a compressed public key.
	recoveryID := compact[0] - 27 - 4
	sigBlob := make([]byte, 65)
	copy(sigBlob[:64], compact[1:])
	sigBlob[64] = recoveryID

	s := NewStack()
	defer ReturnStack(s)

	digestWords := types.Word4FromU8x32(digest)
	if err := s.Extend(digestWords[:]); err != nil {
		t.Fatalf("push digest failed: %v", err)
	}
	pushPackedBytes(t, s, sigBlob, 9)

	if err := cryptoRecoverSecp256k1(s); err != nil {
		t.Fatalf("recover op failed: %v", err)
	}

	tailWord, _ := s.Pop()
	w3, _ := s.Pop()
	w2, _ := s.Pop()
	w1, _ := s.Pop()
	w0, _ := s.Pop()
	headBytes := types.U8x32FromWord4([4]types.Word{w0, w1, w2, w3})
	tailBytes := types.BytesFromWord(tailWord)

	want := priv.PubKey().SerializeCompressed()
	var got [33]byte
	copy(got[:32], headBytes[:])
	got[32] = tailBytes[7]

	if got != [33]byte(want) {
		t.Fatalf("recovered key mismatch:\n got %x\nwant %x", got, want)
	}
}

func TestCryptoRecoverSecp256k1_InvalidRecoveryID(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	var zero [4]types.Word
	_ = s.Extend(zero[:])
	sigBlob := make([]byte, 65)
	sigBlob[64] = 4 // only 0..3 are valid
	pushPackedBytes(t, s, sigBlob, 9)

	if err := cryptoRecoverSecp256k1(s); err != ErrCryptoInvalidRecoveryID {
		t.Fatalf("expected invalid recovery id error, got %v", err)
	}
}
