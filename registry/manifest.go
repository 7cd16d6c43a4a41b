package registry

import (
	"fmt"
	"time"
)

// Kind tells which service a registered model belongs to.
type Kind string

const (
	KindGenerator Kind = "generator"
	KindSpam      Kind = "spam"
)

// ParseKind validates a kind given on the command line.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindGenerator, KindSpam:
		return k, nil
	default:
		return "", fmt.Errorf("unknown model kind %q (want %s or %s)", s, KindGenerator, KindSpam)
	}
}

// ModelManifest describes a registered model's metadata.
type ModelManifest struct {
	Name    string    `json:"name"`
	Kind    Kind      `json:"kind"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	AddedAt time.Time `json:"added_at"`
}
