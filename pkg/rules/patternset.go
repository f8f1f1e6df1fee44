package rules

import (
	"fmt"
	"strings"

	"github.com/walteh/waclone/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// PatternSet is the ordered, immutable rule list for one file category.
// Compilation is deterministic: identical jobs yield identical rule lists,
// and the protected-module restore is always last, because the main
// substitution has to absorb the protected names before they can be
// restored. A compiled set is shared read-only across all workers.
type PatternSet struct {
	category Category
	rules    []rule
}

// Compile builds the PatternSet for a job and category.
func Compile(job *config.Job, category Category) (*PatternSet, error) {
	if job.TargetPackage == "" {
		return nil, errors.Errorf("%w: target package is required to build the protected-module restore", config.ErrConfiguration)
	}

	var rs []rule
	switch category {
	case CategoryStructural:
		rs = structuralRules(job)
	case CategoryMarkup:
		rs = markupRules(job)
	default:
		return nil, errors.Errorf("%w: unknown category %d", config.ErrConfiguration, category)
	}

	if len(job.ProtectedModules) > 0 {
		suffix := ""
		if job.Source == config.SourceVariant {
			suffix = config.VariantSuffix
		}
		rs = append(rs, newProtectedModuleRestore(baseTargetPackage(job), config.SourcePackage, suffix, job.ProtectedModules))
	}

	return &PatternSet{category: category, rules: rs}, nil
}

// structuralRules covers files encoding fully qualified namespace paths.
// For the Variant label the rewrite is two-pass: explicit variant-suffixed
// occurrences go to the new variant form first, then remaining bare
// occurrences go to the new base form, guarded so pass two can never touch
// a suffixed occurrence again. A custom search token bypasses the variant
// logic entirely.
func structuralRules(job *config.Job) []rule {
	if job.CustomSearchToken != "" {
		return []rule{newDelimiterFlexibleToken(job.CustomSearchToken, job.TargetPackage)}
	}

	token := job.Source.SearchToken()
	if job.Source == config.SourceVariant {
		base := baseTargetPackage(job)
		suffixed := token + "." + config.VariantSuffix
		return []rule{
			newDelimiterFlexibleToken(suffixed, base+"."+config.VariantSuffix),
			newGuardedToken(token, config.VariantSuffix, base),
		}
	}
	return []rule{newDelimiterFlexibleToken(token, job.TargetPackage)}
}

// baseTargetPackage returns the target package without a trailing variant
// suffix. The Variant auto default is the suffixed package itself
// ("whatsapp.w4b"); rules that re-append the suffix, and the restore rule
// that matches the renamed base, must start from the bare form or the
// suffix segment gets doubled.
func baseTargetPackage(job *config.Job) string {
	if job.Source == config.SourceVariant {
		return strings.TrimSuffix(job.TargetPackage, "."+config.VariantSuffix)
	}
	return job.TargetPackage
}

// markupRules covers files declaring components, permissions and resources
// by namespace-qualified name. Both bare and variant-suffixed occurrences
// collapse to the new base form in a single pass, then the sticker
// permission and the display folder name are rewritten.
func markupRules(job *config.Job) []rule {
	newToken := config.NamespaceRoot + "." + job.TargetPackage

	var rs []rule
	switch {
	case job.CustomSearchToken != "":
		replacement := rootSegment(job.CustomSearchToken) + "." + job.TargetPackage
		rs = append(rs,
			newLiteralToken(job.CustomSearchToken, replacement),
			newLiteralToken(stickerPermission(job.CustomSearchToken), stickerPermission(replacement)),
		)
	case job.Source == config.SourceVariant:
		token := job.Source.SearchToken()
		rs = append(rs,
			newOptionalSuffixToken(token, config.VariantSuffix, job.TargetPackage),
			newLiteralToken(stickerPermission(token+"."+config.VariantSuffix), stickerPermission(newToken)),
			newLiteralToken(stickerPermission(token), stickerPermission(newToken)),
		)
	default:
		token := job.Source.SearchToken()
		rs = append(rs,
			newDelimiterFlexibleToken(token, job.TargetPackage),
			newLiteralToken(stickerPermission(token), stickerPermission(newToken)),
		)
	}

	if folder := job.Source.FolderName(); folder != "" && job.TargetFolderName != "" {
		rs = append(rs, newLiteralToken(folder, job.TargetFolderName))
	}
	return rs
}

// stickerPermission builds the android:name attribute value of the sticker
// read permission for a dotted package token.
func stickerPermission(token string) string {
	return fmt.Sprintf("android:name=%q", token+".sticker.READ")
}

func rootSegment(token string) string {
	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			return token[:i]
		}
	}
	return token
}

// Category returns the file category this set was compiled for.
func (ps *PatternSet) Category() Category {
	return ps.category
}

// Len returns the number of rules in the set.
func (ps *PatternSet) Len() int {
	return len(ps.rules)
}

// Describe returns a human-readable line per rule, in application order.
func (ps *PatternSet) Describe() []string {
	out := make([]string, len(ps.rules))
	for i, r := range ps.rules {
		out[i] = r.describe()
	}
	return out
}
