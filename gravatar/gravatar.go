// Package gravatar derives deterministic avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar/"

// URL returns the avatar URL for an email address, sized 200px, rated pg,
// with the "mystery person" default image.
func URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{}
	q.Set("s", "200")
	q.Set("r", "pg")
	q.Set("d", "mp")
	return fmt.Sprintf("%s%s?%s", baseURL, hex.EncodeToString(sum[:]), q.Encode())
}
