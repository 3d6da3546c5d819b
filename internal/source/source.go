// Package source resolves an ABI input to bytes.
//
// Inputs are local paths or anything go-getter can fetch:
//   - https://example.com/out/Token.json
//   - s3::https://s3.amazonaws.com/bucket/Token.json
//   - gcs::https://www.googleapis.com/storage/v1/bucket/Token.json
//   - git::https://github.com/org/repo//out/Token.json?ref=v1.2.0
package source

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-getter"

	"github.com/teranos/abisol/errors"
	"github.com/teranos/abisol/logger"
)

// Stdin is the input name meaning standard input
const Stdin = "-"

// IsRemote reports whether input must be fetched rather than opened
func IsRemote(input string) bool {
	if input == Stdin {
		return false
	}
	detected, err := detect(input)
	if err != nil {
		return false
	}
	u, err := url.Parse(detected)
	return err == nil && u.Scheme != "" && u.Scheme != "file"
}

// Read returns the contents of a local path or fetches a remote source
func Read(ctx context.Context, input string) ([]byte, error) {
	if !IsRemote(input) {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", input)
		}
		return data, nil
	}
	return fetch(ctx, input)
}

func detect(input string) (string, error) {
	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}
	return getter.Detect(input, pwd, getter.Detectors)
}

func fetch(ctx context.Context, input string) ([]byte, error) {
	detected, err := detect(input)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to detect source type of %s", input)
	}

	tempDir, err := os.MkdirTemp("", "abisol-fetch-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	dst := filepath.Join(tempDir, "abi.json")
	client := &getter.Client{
		Ctx:     ctx,
		Src:     detected,
		Dst:     dst,
		Mode:    getter.ClientModeFile,
		Getters: getter.Getters,
	}

	logger.Infow("Fetching ABI",
		logger.FieldFile, input,
		"detected", detected)

	if err := client.Get(); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to fetch %s", input),
			"remote inputs must resolve to a single JSON file",
		)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read fetched ABI")
	}

	logger.Debugw("Fetched ABI",
		logger.FieldFile, input,
		logger.FieldSize, len(data))
	return data, nil
}
