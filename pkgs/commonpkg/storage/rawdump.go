package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/dtos/rawpostdto"
)

////////////////////////////////////////////////////////////////////////////////

// DumpRaw saves the fetched records as one json array
func DumpRaw(path string, raws []rawpostdto.RawPost) error {
	if raws == nil {
		raws = []rawpostdto.RawPost{}
	}
	data, err := json.MarshalIndent(raws, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0666)
}

// LoadRaw reads back a file written by DumpRaw
func LoadRaw(path string) ([]rawpostdto.RawPost, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	loaded := make([]rawpostdto.RawPost, 0)
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, err
	}
	return loaded, nil
}
