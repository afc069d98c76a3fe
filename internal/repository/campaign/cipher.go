package campaign

import (
	"crypto/cipher"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/kailas-cloud/leadscope/internal/domain"
	domcampaign "github.com/kailas-cloud/leadscope/internal/domain/campaign"
)

// Cipher opens campaign payloads sealed with XChaCha20-Poly1305.
// Sealed layout: 24-byte nonce followed by the ciphertext. The campaign id is
// the additional data, so a payload copied to another campaign fails to open.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher creates a Cipher from a 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("campaign cipher: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Decrypt opens a sealed payload and parses the {headers, rows} table.
func (c *Cipher) Decrypt(id string, sealed []byte) (domcampaign.Payload, error) {
	ns := c.aead.NonceSize()
	if len(sealed) < ns+c.aead.Overhead() {
		return domcampaign.Payload{}, fmt.Errorf("%w: campaign %s: payload too short", domain.ErrDecrypt, id)
	}

	plain, err := c.aead.Open(nil, sealed[:ns], sealed[ns:], []byte(id))
	if err != nil {
		return domcampaign.Payload{}, fmt.Errorf("%w: campaign %s: %w", domain.ErrDecrypt, id, err)
	}

	var p domcampaign.Payload
	if err := json.Unmarshal(plain, &p); err != nil {
		return domcampaign.Payload{}, fmt.Errorf("%w: campaign %s: parse payload: %w", domain.ErrDecrypt, id, err)
	}
	return p, nil
}
