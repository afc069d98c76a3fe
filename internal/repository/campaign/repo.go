package campaign

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/leadscope/internal/domain"
	domcampaign "github.com/kailas-cloud/leadscope/internal/domain/campaign"
)

// store is the consumer interface for campaign hashes (ISP).
type store interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// decrypter opens a sealed payload for one campaign.
type decrypter interface {
	Decrypt(id string, sealed []byte) (domcampaign.Payload, error)
}

// Repo loads and decrypts campaigns.
type Repo struct {
	store  store
	dec    decrypter
	prefix string
}

// New creates a campaign repository. Keys are <prefix>campaign:<id>.
func New(s store, dec decrypter, prefix string) *Repo {
	return &Repo{store: s, dec: dec, prefix: prefix}
}

func (r *Repo) keyPrefix() string { return r.prefix + "campaign:" }

// List loads every campaign. Store failures fail the call; a campaign that
// cannot be decoded or decrypted comes back as a failed Result.
func (r *Repo) List(ctx context.Context) ([]domcampaign.Result[domcampaign.Campaign], error) {
	keys, err := r.store.Scan(ctx, r.keyPrefix()+"*")
	if err != nil {
		return nil, fmt.Errorf("scan campaigns: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load campaigns: %w", err)
	}

	out := make([]domcampaign.Result[domcampaign.Campaign], 0, len(keys))
	for i, h := range hashes {
		if len(h) == 0 {
			continue // deleted between SCAN and HGETALL
		}
		id := strings.TrimPrefix(keys[i], r.keyPrefix())
		out = append(out, r.open(id, h))
	}
	return out, nil
}

func (r *Repo) open(id string, h map[string]string) domcampaign.Result[domcampaign.Campaign] {
	sealed, err := base64.StdEncoding.DecodeString(h["payload"])
	if err != nil {
		return domcampaign.Fail[domcampaign.Campaign](fmt.Errorf("%w: campaign %s: decode payload: %w", domain.ErrDecrypt, id, err))
	}
	payload, err := r.dec.Decrypt(id, sealed)
	if err != nil {
		return domcampaign.Fail[domcampaign.Campaign](err)
	}

	c := domcampaign.Campaign{ID: id, Name: h["name"], Payload: payload}
	if ts := h["created_at"]; ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			c.CreatedAt = t
		}
	}
	return domcampaign.Ok(c)
}
