package commerce

import (
	"encoding/json"
	"time"

	"github.com/lulab/website-backend/lib/myvault"
)

// Token is the platform credential cached in the vault. It stays usable
// until its absolute expiry; concurrent re-fetches race benignly, the last
// write wins.
type Token struct {
	AccessToken string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

func createTokenUID() string {
	return myvault.CurrentToken + "_xiaoe"
}

type goodsResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}
