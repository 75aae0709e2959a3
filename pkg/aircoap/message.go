package aircoap

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// SessionID is the message counter negotiated via /sys/dev/sync. The device
// expects it to grow by one for every control message, and every payload is
// encrypted with a key/IV derived from it.
type SessionID uint32

const (
	checksumLen = 64 // hex chars of the trailing SHA-256
	secretWord  = "JiangPan"
)

var rnd = rand.New(rand.NewSource(time.Now().UnixNano()))

// ParseSessionID parses the 8 hex chars at the start of a payload.
func ParseSessionID(data []byte) SessionID {
	if len(data) > 8 {
		data = data[:8]
	}
	s, _ := strconv.ParseUint(string(data), 16, 32)
	return SessionID(s)
}

// NewSessionID returns a random starting SessionID for the sync handshake.
func NewSessionID() SessionID {
	return SessionID(rnd.Uint32())
}

func (id SessionID) Hex() string {
	return fmt.Sprintf("%08X", id)
}

// keyIV derives the AES key and IV from the session counter. The 16 raw MD5
// bytes are stretched to 2x16 by hex encoding each half.
func (id SessionID) keyIV() (key, iv []byte) {
	sum := md5.Sum([]byte(secretWord + id.Hex()))
	key = []byte(strings.ToUpper(hex.EncodeToString(sum[0:8])))
	iv = []byte(strings.ToUpper(hex.EncodeToString(sum[8:])))
	return
}

func (id SessionID) decrypt(data []byte) ([]byte, error) {
	key, iv := id.keyIV()
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not block aligned", len(data))
	}
	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)
	return out, nil
}

func (id SessionID) encrypt(data []byte) ([]byte, error) {
	key, iv := id.keyIV()
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)
	return out, nil
}

// DecodeMessage decrypts a payload as received from the device: 8 hex chars
// of session counter, hex ciphertext, 64 hex chars of SHA-256 over the rest.
// The hash is not verified: it is a plain hash, not an HMAC, and UDP already
// checksums the datagram.
func DecodeMessage(msg []byte) ([]byte, error) {
	sess := ParseSessionID(msg)
	if len(msg) < 8+checksumLen {
		return nil, fmt.Errorf("message too short: %d bytes", len(msg))
	}
	data, err := hex.DecodeString(string(msg[8 : len(msg)-checksumLen]))
	if err != nil {
		return nil, fmt.Errorf("error decoding hex: %w", err)
	}

	out, err := sess.decrypt(data)
	if err != nil {
		return nil, fmt.Errorf("unable to decrypt: %w", err)
	}

	// Strip PKCS7-style padding. The devices occasionally emit a full extra
	// block of 0x10, so trim any trailing run of bytes in 1..16.
	for len(out) > 0 {
		if out[len(out)-1] < 1 || out[len(out)-1] > 16 {
			break
		}
		out = out[:len(out)-1]
	}
	return out, nil
}

// EncodeMessage encrypts a control payload for the given session counter and
// appends the SHA-256 checksum the firmware insists on.
func EncodeMessage(sess SessionID, msg []byte) ([]byte, error) {
	if len(msg) == 0 {
		return nil, fmt.Errorf("empty message")
	}

	padding := (aes.BlockSize - (len(msg) % aes.BlockSize)) % aes.BlockSize
	for i := 0; i < padding; i++ {
		msg = append(msg, byte(padding))
	}
	out, err := sess.encrypt(msg)
	if err != nil {
		return nil, fmt.Errorf("unable to encrypt: %w", err)
	}
	outMsg := sess.Hex() + strings.ToUpper(hex.EncodeToString(out))
	shaSum := sha256.Sum256([]byte(outMsg))
	outMsg += strings.ToUpper(hex.EncodeToString(shaSum[:]))
	return []byte(outMsg), nil
}
