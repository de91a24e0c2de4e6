package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewLocalID returns an id for records created without a remote backend,
// e.g. "local-1718000000000-V1StGXR8_Z5jdHi6B-myT".
func NewLocalID() (string, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("local-%d-%s", time.Now().UnixMilli(), suffix), nil
}

// NewProgramID identifies one bulk generation run.
func NewProgramID(now time.Time) string {
	return fmt.Sprintf("prog-%d", now.UnixMilli())
}
