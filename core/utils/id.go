package utils

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const shortIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Entity id prefixes.
const (
	PrefixActivity     = "act"
	PrefixRegistration = "reg"
	PrefixComment      = "cmt"
	PrefixDraft        = "drf"
	PrefixNotification = "ntf"
)

// GenerateID returns "<prefix>-<uuid v4>". Ids never derive from the clock, so rapid
// creation cannot produce duplicates.
func GenerateID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// GenerateShortID returns a random alphanumeric id of the given length.
func GenerateShortID(length int) string {
	id, err := gonanoid.Generate(shortIDAlphabet, length)
	if err != nil {
		// fall back to uuid characters, still random
		return uuid.NewString()[:length]
	}
	return id
}

// ActivityImageURL builds a placeholder image URL seeded from the title plus a random suffix.
func ActivityImageURL(title string) string {
	seed := slug.Make(title)
	if seed == "" {
		seed = "event"
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s-%s/800/600", seed, GenerateShortID(8))
}
