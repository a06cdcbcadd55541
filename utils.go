package agencyhub

import (
	"crypto/rand"
	"fmt"
	"net/url"
	"strings"
)

const publicVoteIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewPublicVoteID returns a random 8-character lowercase alphanumeric token.
func NewPublicVoteID() (string, error) {
	buf := make([]byte, PublicVoteIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate public vote id: %w", err)
	}
	for i, b := range buf {
		// 252 is the largest multiple of 36 below 256; resample to keep the distribution flat.
		for b >= 252 {
			var one [1]byte
			if _, err := rand.Read(one[:]); err != nil {
				return "", fmt.Errorf("failed to generate public vote id: %w", err)
			}
			b = one[0]
		}
		buf[i] = publicVoteIDAlphabet[int(b)%len(publicVoteIDAlphabet)]
	}
	return string(buf), nil
}

func IsPublicVoteID(id string) bool {
	if len(id) != PublicVoteIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(publicVoteIDAlphabet, id[i]) < 0 {
			return false
		}
	}
	return true
}

func VoteCookieName(publicVoteID string) string {
	return VoteCookiePrefix + publicVoteID
}

func VoteChannel(publicVoteID string) string {
	return "vote:" + publicVoteID
}

func ComposeVoteURL(baseURL, publicVoteID string) string {
	return strings.TrimRight(baseURL, "/") + "/vote/" + url.PathEscape(publicVoteID)
}

func ComposeDiscoveryURL(baseURL, discoveryLinkID string) string {
	return strings.TrimRight(baseURL, "/") + "/discovery/" + url.PathEscape(discoveryLinkID)
}

// ParseObjectURL extracts the object name from a public object URL under prefix.
func ParseObjectURL(prefix, objectURL string) (string, error) {
	prefix = strings.TrimRight(prefix, "/") + "/"
	if !strings.HasPrefix(objectURL, prefix) {
		return "", fmt.Errorf("url %q is not under %q", objectURL, prefix)
	}
	name, err := url.PathUnescape(strings.TrimPrefix(objectURL, prefix))
	if err != nil {
		return "", fmt.Errorf("invalid object url: %w", err)
	}
	if name == "" {
		return "", fmt.Errorf("url %q has no object name", objectURL)
	}
	return name, nil
}
