// Package vectors provides fixed-length skill vectors and cosine similarity
// for the semantic skill matching mode.
package vectors

import (
	"hash/fnv"
	"math"
	"strings"
)

// Dim is the fixed length of every skill vector.
const Dim = 16

// Vector is a fixed-length numeric representation of a skill string.
type Vector [Dim]float64

// Cosine returns the cosine similarity of two vectors in [-1,1].
// Returns 0 when either vector has zero magnitude.
func Cosine(a, b Vector) float64 {
	var dot, normA, normB float64
	for i := 0; i < Dim; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Embedder produces a vector for a skill string. It is a replaceable pure
// function: implementations must be deterministic.
type Embedder interface {
	Embed(skill string) Vector
}

// TableEmbedder looks terms up in a hand-maintained table and falls back to
// a deterministic hash-derived pseudo-vector for unknown terms. The table
// places related technologies near each other so that cosine similarity
// between known terms is meaningful.
type TableEmbedder struct {
	table map[string]Vector
}

// NewTableEmbedder returns an embedder backed by the built-in skill table.
func NewTableEmbedder() *TableEmbedder {
	return &TableEmbedder{table: builtinTable}
}

// NewTableEmbedderWith returns an embedder backed by a caller-supplied
// table, for tests or alternative vocabularies. Keys are normalized.
func NewTableEmbedderWith(table map[string]Vector) *TableEmbedder {
	normalized := make(map[string]Vector, len(table))
	for k, v := range table {
		normalized[normalize(k)] = v
	}
	return &TableEmbedder{table: normalized}
}

// Embed returns the table vector for a known term, or a pseudo-vector
// derived from an FNV hash of the normalized term otherwise.
func (e *TableEmbedder) Embed(skill string) Vector {
	key := normalize(skill)
	if v, ok := e.table[key]; ok {
		return v
	}
	return pseudoVector(key)
}

// Known reports whether the term is present in the hand-maintained table.
func (e *TableEmbedder) Known(skill string) bool {
	_, ok := e.table[normalize(skill)]
	return ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// pseudoVector derives a deterministic unit-independent vector from the
// term's FNV-64 hash. Each component is drawn from successive hash rounds
// and mapped into [-1,1]. Unrelated unknown terms end up near-orthogonal,
// while identical strings always collide onto the same vector.
func pseudoVector(key string) Vector {
	var v Vector
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	seed := h.Sum64()
	for i := 0; i < Dim; i++ {
		seed = seed*6364136223846793005 + 1442695040888963407 // LCG step
		// Take the top 32 bits and map onto [-1,1].
		v[i] = float64(int32(seed>>32)) / float64(math.MaxInt32)
	}
	return v
}

// builtinTable is a small hand-built vocabulary. Axes are informal concept
// groups (frontend, backend, systems, data, infra, mobile, db, scripting...)
// rather than learned dimensions; what matters is that synonyms and close
// relatives point the same way.
var builtinTable = map[string]Vector{
	"javascript": {0.9, 0.1, 0, 0, 0, 0, 0, 0.6, 0, 0, 0, 0, 0, 0, 0, 0},
	"js":         {0.9, 0.1, 0, 0, 0, 0, 0, 0.6, 0, 0, 0, 0, 0, 0, 0, 0},
	"typescript": {0.88, 0.15, 0, 0, 0, 0, 0, 0.55, 0, 0, 0, 0, 0, 0, 0, 0},
	"node.js":    {0.7, 0.6, 0, 0, 0, 0, 0, 0.5, 0, 0, 0, 0, 0, 0, 0, 0},
	"nodejs":     {0.7, 0.6, 0, 0, 0, 0, 0, 0.5, 0, 0, 0, 0, 0, 0, 0, 0},
	"react":      {0.95, 0.05, 0, 0, 0, 0, 0, 0.3, 0.2, 0, 0, 0, 0, 0, 0, 0},
	"vue":        {0.93, 0.05, 0, 0, 0, 0, 0, 0.3, 0.25, 0, 0, 0, 0, 0, 0, 0},
	"angular":    {0.92, 0.08, 0, 0, 0, 0, 0, 0.3, 0.25, 0, 0, 0, 0, 0, 0, 0},
	"html":       {0.85, 0, 0, 0, 0, 0, 0, 0.2, 0.4, 0, 0, 0, 0, 0, 0, 0},
	"css":        {0.85, 0, 0, 0, 0, 0, 0, 0.2, 0.45, 0, 0, 0, 0, 0, 0, 0},

	"go":     {0.05, 0.9, 0.4, 0, 0.2, 0, 0, 0.3, 0, 0, 0, 0, 0, 0, 0, 0},
	"golang": {0.05, 0.9, 0.4, 0, 0.2, 0, 0, 0.3, 0, 0, 0, 0, 0, 0, 0, 0},
	"java":   {0.1, 0.88, 0.2, 0, 0.1, 0, 0, 0.35, 0, 0, 0, 0, 0, 0, 0, 0},
	"kotlin": {0.1, 0.8, 0.15, 0, 0, 0.5, 0, 0.3, 0, 0, 0, 0, 0, 0, 0, 0},
	"c#":     {0.12, 0.85, 0.25, 0, 0.1, 0, 0, 0.35, 0, 0, 0, 0, 0, 0, 0, 0},
	".net":   {0.12, 0.85, 0.25, 0, 0.1, 0, 0, 0.3, 0, 0, 0, 0, 0, 0, 0, 0},
	"c++":    {0, 0.5, 0.95, 0, 0.1, 0, 0, 0.2, 0, 0, 0, 0, 0, 0, 0, 0},
	"c":      {0, 0.4, 0.95, 0, 0.1, 0, 0, 0.15, 0, 0, 0, 0, 0, 0, 0, 0},
	"rust":   {0, 0.55, 0.9, 0, 0.15, 0, 0, 0.2, 0, 0, 0, 0, 0, 0, 0, 0},

	"python": {0.1, 0.7, 0.1, 0.6, 0.15, 0, 0, 0.5, 0, 0, 0, 0, 0, 0, 0, 0},
	"ruby":   {0.15, 0.75, 0, 0.1, 0, 0, 0, 0.5, 0, 0, 0, 0, 0, 0, 0, 0},
	"php":    {0.3, 0.75, 0, 0, 0, 0, 0, 0.4, 0.1, 0, 0, 0, 0, 0, 0, 0},

	"sql":           {0, 0.2, 0, 0.5, 0, 0, 0.9, 0.1, 0, 0, 0, 0, 0, 0, 0, 0},
	"postgresql":    {0, 0.25, 0, 0.4, 0.1, 0, 0.92, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"postgres":      {0, 0.25, 0, 0.4, 0.1, 0, 0.92, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"mysql":         {0, 0.25, 0, 0.35, 0.1, 0, 0.9, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"mongodb":       {0, 0.3, 0, 0.35, 0.1, 0, 0.85, 0, 0, 0.2, 0, 0, 0, 0, 0, 0},
	"redis":         {0, 0.35, 0.1, 0.2, 0.2, 0, 0.8, 0, 0, 0.15, 0, 0, 0, 0, 0, 0},
	"elasticsearch": {0, 0.3, 0, 0.5, 0.15, 0, 0.75, 0, 0, 0.2, 0, 0, 0, 0, 0, 0},

	"docker":     {0, 0.2, 0.1, 0, 0.95, 0, 0.1, 0.1, 0, 0, 0, 0, 0, 0, 0, 0},
	"kubernetes": {0, 0.2, 0.1, 0, 0.95, 0, 0.1, 0.05, 0, 0.1, 0, 0, 0, 0, 0, 0},
	"k8s":        {0, 0.2, 0.1, 0, 0.95, 0, 0.1, 0.05, 0, 0.1, 0, 0, 0, 0, 0, 0},
	"aws":        {0, 0.25, 0, 0.1, 0.9, 0, 0.2, 0.05, 0, 0.2, 0, 0, 0, 0, 0, 0},
	"gcp":        {0, 0.25, 0, 0.15, 0.88, 0, 0.2, 0.05, 0, 0.2, 0, 0, 0, 0, 0, 0},
	"azure":      {0, 0.25, 0, 0.1, 0.88, 0, 0.2, 0.05, 0, 0.2, 0, 0, 0, 0, 0, 0},
	"terraform":  {0, 0.1, 0, 0, 0.92, 0, 0, 0.1, 0, 0, 0, 0, 0, 0, 0, 0},
	"ci/cd":      {0, 0.15, 0, 0, 0.85, 0, 0, 0.15, 0, 0, 0, 0, 0, 0, 0, 0},
	"linux":      {0, 0.3, 0.6, 0, 0.7, 0, 0, 0.2, 0, 0, 0, 0, 0, 0, 0, 0},

	"machine learning": {0, 0.2, 0.1, 0.95, 0.1, 0, 0.1, 0.2, 0, 0, 0, 0, 0, 0, 0, 0},
	"data science":     {0, 0.15, 0, 0.95, 0.05, 0, 0.25, 0.2, 0, 0, 0, 0, 0, 0, 0, 0},
	"pandas":           {0, 0.1, 0, 0.9, 0, 0, 0.2, 0.3, 0, 0, 0, 0, 0, 0, 0, 0},
	"tensorflow":       {0, 0.1, 0.2, 0.92, 0.1, 0, 0, 0.15, 0, 0, 0, 0, 0, 0, 0, 0},
	"pytorch":          {0, 0.1, 0.2, 0.92, 0.1, 0, 0, 0.15, 0, 0, 0, 0, 0, 0, 0, 0},

	"swift":        {0.1, 0.4, 0.2, 0, 0, 0.95, 0, 0.2, 0, 0, 0, 0, 0, 0, 0, 0},
	"ios":          {0.15, 0.3, 0.1, 0, 0, 0.95, 0, 0.15, 0, 0, 0, 0, 0, 0, 0, 0},
	"android":      {0.15, 0.35, 0.1, 0, 0, 0.93, 0, 0.15, 0, 0, 0, 0, 0, 0, 0, 0},
	"react native": {0.6, 0.15, 0, 0, 0, 0.8, 0, 0.25, 0.1, 0, 0, 0, 0, 0, 0, 0},
	"flutter":      {0.5, 0.2, 0, 0, 0, 0.85, 0, 0.2, 0.1, 0, 0, 0, 0, 0, 0, 0},

	"graphql": {0.4, 0.6, 0, 0, 0.1, 0, 0.3, 0.2, 0, 0.3, 0, 0, 0, 0, 0, 0},
	"rest":    {0.35, 0.65, 0, 0, 0.1, 0, 0.2, 0.2, 0, 0.35, 0, 0, 0, 0, 0, 0},
	"grpc":    {0.1, 0.7, 0.2, 0, 0.2, 0, 0.1, 0.1, 0, 0.4, 0, 0, 0, 0, 0, 0},
	"kafka":   {0, 0.5, 0.15, 0.3, 0.3, 0, 0.3, 0, 0, 0.6, 0, 0, 0, 0, 0, 0},
	"git":     {0.2, 0.3, 0.2, 0.1, 0.3, 0.1, 0, 0.6, 0, 0, 0, 0, 0, 0, 0, 0},
}
