package abi

import (
	"bytes"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/teranos/abisol/errors"
)

// Validate checks every entry against go-ethereum's ABI type parser.
// Generation itself trusts type strings; this is an opt-in check for inputs
// that come from hand-written files.
func Validate(entries []Entry) error {
	data, err := Marshal(entries)
	if err != nil {
		return err
	}
	if _, err := gethabi.JSON(bytes.NewReader(data)); err != nil {
		return errors.WithHint(
			errors.Wrap(errors.ErrInvalidABI, err.Error()),
			"check parameter type strings and tuple components",
		)
	}
	return nil
}
