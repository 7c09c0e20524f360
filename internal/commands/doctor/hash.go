package doctor

import (
	"context"
	"crypto/sha3"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"github.com/glyphpad/glyph/pkg/cuid"
)

// Known-answer digests of the empty string, from the FIPS 180-4 and FIPS 202
// test vectors.
const (
	sha512Empty  = "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"
	sha3512Empty = "a69f73cca23a9ac5c8b567dc185a756e97c982164fe25859e0d1dcc1475c80a615b2123af1f5f94c11e3e9402c3ac558f500199d95b6d3e301758586281dcd26"
)

// HashCheck verifies the digest primitives behind both hash variants against
// known-answer vectors and sanity-checks the base-36 encoding on top.
type HashCheck struct{}

// NewHashCheck creates a new hash check.
func NewHashCheck() *HashCheck {
	return &HashCheck{}
}

func (c *HashCheck) Name() string {
	return "Hashing"
}

func (c *HashCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	sha3Sum := sha3.Sum512(nil)
	result.Items = append(result.Items, knownAnswerItem("SHA3-512 known answer", hex.EncodeToString(sha3Sum[:]), sha3512Empty))

	sha2Sum := sha512.Sum512(nil)
	result.Items = append(result.Items, knownAnswerItem("SHA-512 known answer", hex.EncodeToString(sha2Sum[:]), sha512Empty))

	result.Items = append(result.Items, encodingItem(cuid.VariantSHA3512))
	result.Items = append(result.Items, encodingItem(cuid.VariantSHA512))
	return result
}

func knownAnswerItem(label, got, want string) CheckItem {
	item := CheckItem{Label: label}
	if got != want {
		item.Status = StatusFail
		item.Detail = fmt.Sprintf("digest mismatch: got %s", got)
		return item
	}
	item.Status = StatusPass
	item.Detail = "empty-input digest matches"
	return item
}

// encodingItem verifies a variant's Hasher emits base-36 text of plausible
// digest size. A 512-bit digest encodes to about 99 characters; anything
// dramatically shorter means the encoding lost data.
func encodingItem(v cuid.HashVariant) CheckItem {
	item := CheckItem{Label: fmt.Sprintf("%s encoding", v)}

	out := cuid.NewHasher(v).Hash("glyph")
	switch {
	case len(out) < 90:
		item.Status = StatusFail
		item.Detail = fmt.Sprintf("digest encoded to %d characters", len(out))
	case !isBase36(out):
		item.Status = StatusFail
		item.Detail = "digest contains non-base-36 characters"
	default:
		item.Status = StatusPass
		item.Detail = fmt.Sprintf("%d base-36 chars", len(out))
	}
	return item
}
