package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const receiveABI = `[{"type":"receive","stateMutability":"payable"}]`

func TestIsRemote(t *testing.T) {
	tests := []struct {
		input  string
		remote bool
	}{
		{"-", false},
		{"Token.json", false},
		{"./out/Token.json", false},
		{"/abs/path/Token.json", false},
		{"https://example.com/Token.json", true},
		{"s3::https://s3.amazonaws.com/bucket/Token.json", true},
		{"git::https://github.com/org/repo//out/Token.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.remote, IsRemote(tt.input))
		})
	}
}

func TestReadLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Receive.json")
	require.NoError(t, os.WriteFile(path, []byte(receiveABI), 0644))

	data, err := Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, receiveABI, string(data))

	_, err = Read(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/out/Receive.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(receiveABI))
	}))
	defer srv.Close()

	data, err := Read(context.Background(), srv.URL+"/out/Receive.json")
	require.NoError(t, err)
	assert.Equal(t, receiveABI, string(data))

	_, err = Read(context.Background(), srv.URL+"/missing.json")
	assert.Error(t, err)
}
