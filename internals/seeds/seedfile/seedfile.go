package seedfile

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
)

// ReadJSON membaca satu file seed ke dst.
func ReadJSON(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed %s: %w", path, err)
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode seed %s: %w", path, err)
	}
	return nil
}
