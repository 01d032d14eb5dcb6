// Package annotation models annotated knowledge-graph documents: nodes
// whose property values carry confidence, opinion, provenance, and
// temporal qualifiers. It is the shared substrate for graph merging,
// temporal queries, and the adapter-facing walk facade. Adapters
// convert their own vocabularies into this shape, and no source
// vocabulary leaks past it.
package annotation

// Annotation keys recognized across the core. Adapters may configure a
// narrower set for walking; these are the defaults.
const (
	KeyValue       = "@value"
	KeyConfidence  = "@confidence"
	KeyOpinion     = "@opinion"
	KeySource      = "@source"
	KeyExtractedAt = "@extractedAt"
	KeyMethod      = "@method"

	KeyHumanVerified = "@humanVerified"

	KeyValidFrom  = "@validFrom"
	KeyValidUntil = "@validUntil"
	KeyAsOf       = "@asOf"

	KeyPersonalDataCategory = "@personalDataCategory"
	KeyLegalBasis           = "@legalBasis"
	KeyProcessingPurpose    = "@processingPurpose"
	KeyDataController       = "@dataController"
	KeyDataProcessor        = "@dataProcessor"
	KeyDataSubject          = "@dataSubject"
	KeyRetentionUntil       = "@retentionUntil"
	KeyJurisdiction         = "@jurisdiction"
	KeyAccessLevel          = "@accessLevel"
	KeyConsent              = "@consent"
	KeyErasureRequested     = "@erasureRequested"
	KeyErasureRequestedAt   = "@erasureRequestedAt"
	KeyRestrictProcessing   = "@restrictProcessing"
	KeyRestrictionReason    = "@restrictionReason"
)

// KeySet is a set of annotation keys a walk should recognize.
type KeySet map[string]bool

// DefaultKeys returns the full recognized annotation key set.
func DefaultKeys() KeySet {
	return KeySet{
		KeyConfidence:           true,
		KeyOpinion:              true,
		KeySource:               true,
		KeyExtractedAt:          true,
		KeyMethod:               true,
		KeyHumanVerified:        true,
		KeyValidFrom:            true,
		KeyValidUntil:           true,
		KeyAsOf:                 true,
		KeyPersonalDataCategory: true,
		KeyLegalBasis:           true,
		KeyProcessingPurpose:    true,
		KeyDataController:       true,
		KeyDataProcessor:        true,
		KeyDataSubject:          true,
		KeyRetentionUntil:       true,
		KeyJurisdiction:         true,
		KeyAccessLevel:          true,
		KeyConsent:              true,
		KeyErasureRequested:     true,
		KeyErasureRequestedAt:   true,
		KeyRestrictProcessing:   true,
		KeyRestrictionReason:    true,
	}
}
