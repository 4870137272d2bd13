package scan

import (
	"github.com/dekarrin/rezi"
)

// MarshalBinary converts t into a slice of bytes that can be decoded with
// UnmarshalBinary.
func (t Token) MarshalBinary() ([]byte, error) {
	var enc []byte

	enc = append(enc, rezi.EncInt(int(t.Kind))...)
	enc = append(enc, rezi.EncString(t.Text)...)
	enc = append(enc, rezi.EncInt(t.Line)...)
	enc = append(enc, rezi.EncInt(t.Column)...)
	enc = append(enc, rezi.EncInt(int(t.Err))...)

	return enc, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into t.
// All of t's fields will be replaced by the fields decoded from data.
func (t *Token) UnmarshalBinary(data []byte) error {
	var n int
	var offset int
	var err error

	var iVal int
	iVal, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return err
	}
	t.Kind = Kind(iVal)
	offset += n

	t.Text, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return err
	}
	offset += n

	t.Line, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return err
	}
	offset += n

	t.Column, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return err
	}
	offset += n

	iVal, _, err = rezi.DecInt(data[offset:])
	if err != nil {
		return err
	}
	t.Err = LexError(iVal)

	return nil
}

// EncodeTokens serializes a token sequence to bytes for persistence.
func EncodeTokens(tokens []Token) []byte {
	enc := rezi.EncInt(len(tokens))
	for i := range tokens {
		enc = append(enc, rezi.EncBinary(tokens[i])...)
	}
	return enc
}

// DecodeTokens deserializes a token sequence previously encoded with
// EncodeTokens.
func DecodeTokens(data []byte) ([]Token, error) {
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, err
	}
	offset := n

	tokens := make([]Token, count)
	for i := 0; i < count; i++ {
		n, err = rezi.DecBinary(data[offset:], &tokens[i])
		if err != nil {
			return nil, err
		}
		offset += n
	}

	return tokens, nil
}
