package model

import (
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type ImageAsset struct {
	Path        string        `json:"path"`
	SHA         types.BlobSHA `json:"sha"`
	Size        int64         `json:"size"`
	Format      string        `json:"format"`
	Used        bool          `json:"used"`
	Optimizable bool          `json:"optimizable"`
	// ReferencedBy lists up to a few content files mentioning the image.
	ReferencedBy []string `json:"referencedBy,omitempty"`
}

type PerformanceReport struct {
	Repository       string           `json:"repository,omitempty"`
	Branch           types.BranchName `json:"branch"`
	Images           []*ImageAsset    `json:"images"`
	TotalSize        int64            `json:"totalSize"`
	UnusedCount      int              `json:"unusedCount"`
	UnusedSize       int64            `json:"unusedSize"`
	OptimizableCount int              `json:"optimizableCount"`
	OptimizableSize  int64            `json:"optimizableSize"`
	ScannedFiles     int              `json:"scannedFiles"`
	Truncated        bool             `json:"truncated,omitempty"`
}

// CompressionPreset tunes re-encoding. MaxWidth 0 keeps dimensions.
type CompressionPreset struct {
	Name        string `json:"name"`
	JPEGQuality int    `json:"jpegQuality"`
	MaxWidth    int    `json:"maxWidth"`
}

var compressionPresets = map[string]CompressionPreset{
	"balanced":   {Name: "balanced", JPEGQuality: 82, MaxWidth: 2400},
	"aggressive": {Name: "aggressive", JPEGQuality: 70, MaxWidth: 1920},
	"lossless":   {Name: "lossless", JPEGQuality: 92, MaxWidth: 0},
}

const DefaultPreset = "balanced"

func LookupPreset(name string) (CompressionPreset, error) {
	if name == "" {
		name = DefaultPreset
	}
	p, ok := compressionPresets[name]
	if !ok {
		return CompressionPreset{}, goerr.Wrap(types.ErrValidationFailed, "unknown compression preset", goerr.V("preset", name))
	}
	return p, nil
}

type CleanupInput struct {
	Delete   []string `json:"delete"`
	Optimize []string `json:"optimize"`
	Preset   string   `json:"preset,omitempty"`
}

func (x *CleanupInput) Validate() error {
	if len(x.Delete) == 0 && len(x.Optimize) == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "nothing to clean up")
	}
	for _, p := range append(append([]string{}, x.Delete...), x.Optimize...) {
		if err := ValidatePath(p); err != nil {
			return err
		}
	}
	if _, err := LookupPreset(x.Preset); err != nil {
		return err
	}
	return nil
}

type OptimizedImage struct {
	Path   string `json:"path"`
	Before int64  `json:"before"`
	After  int64  `json:"after"`
}

type SkippedImage struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type BlockedImage struct {
	Path         string   `json:"path"`
	ReferencedBy []string `json:"referencedBy"`
}

type CleanupResult struct {
	Optimized    []*OptimizedImage `json:"optimized"`
	Skipped      []*SkippedImage   `json:"skipped"`
	Deleted      []string          `json:"deleted"`
	Blocked      []*BlockedImage   `json:"blocked"`
	BlockedCount int               `json:"blockedCount"`
	Failed       []*ItemError      `json:"failed"`
	SavedBytes   int64             `json:"savedBytes"`
	PendingCount int               `json:"pendingCount"`
}
