package api

import "time"

// Document processing states as reported by the server.
const (
	DocumentStatusPending    = "pending"
	DocumentStatusProcessing = "processing"
	DocumentStatusAnnotated  = "annotated"
	DocumentStatusFailed     = "failed"
)

// Task lifecycle states.
const (
	TaskStateQueued  = "queued"
	TaskStateRunning = "running"
	TaskStateDone    = "done"
	TaskStateFailed  = "failed"
)

// Graph node kinds.
const (
	NodeKindConcept = "concept"
	NodeKindEntity  = "entity"
	NodeKindClaim   = "claim"
)

// Project is a server-side container of documents and annotation tasks.
type Project struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	DocumentCount int       `json:"document_count"`
	TaskCount     int       `json:"task_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Document is a single source document inside a project.
type Document struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	Title           string    `json:"title"`
	Source          string    `json:"source,omitempty"`
	MimeType        string    `json:"mime_type,omitempty"`
	SizeBytes       int64     `json:"size_bytes"`
	Status          string    `json:"status"`
	AnnotationCount int       `json:"annotation_count"`
	Tags            []string  `json:"tags,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DocumentsPage is one page of a document listing.
type DocumentsPage struct {
	Items   []Document `json:"documents"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
	Total   int        `json:"total"`
	HasMore bool       `json:"has_more"`
}

// DocumentUpload is the request body for creating a document.
type DocumentUpload struct {
	Title    string   `json:"title"`
	Source   string   `json:"source,omitempty"`
	MimeType string   `json:"mime_type,omitempty"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags,omitempty"`
}

// Task is a long-running server-side job, such as an annotation run or a
// bulk import.
type Task struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	DocumentID string    `json:"document_id,omitempty"`
	Kind       string    `json:"kind"`
	State      string    `json:"state"`
	Progress   float64   `json:"progress"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GraphNode is a node of a project's knowledge graph.
type GraphNode struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Label     string    `json:"label"`
	Kind      string    `json:"kind"`
	Degree    int       `json:"degree"`
	DocRefs   int       `json:"doc_refs"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GraphNodesPage is one page of a graph node listing.
type GraphNodesPage struct {
	Items   []GraphNode `json:"nodes"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Total   int         `json:"total"`
	HasMore bool        `json:"has_more"`
}

// GraphStats summarizes a project's knowledge graph.
type GraphStats struct {
	ProjectID string  `json:"project_id"`
	Nodes     int     `json:"nodes"`
	Edges     int     `json:"edges"`
	Density   float64 `json:"density"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// Span marks a half-open byte range [Start, End) inside a document.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Annotation is a labeled span attached to a document. Annotations carry
// yaml tags as well because they are the payload of `cot docs export`.
type Annotation struct {
	ID         string    `json:"id" yaml:"id"`
	DocumentID string    `json:"document_id" yaml:"document_id"`
	ProjectID  string    `json:"project_id" yaml:"project_id"`
	Kind       string    `json:"kind" yaml:"kind"`
	Body       string    `json:"body,omitempty" yaml:"body,omitempty"`
	Span       Span      `json:"span" yaml:"span"`
	Author     string    `json:"author,omitempty" yaml:"author,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// AnnotationsPage is one cursor page of an annotation listing. An empty
// NextCursor means the listing is exhausted.
type AnnotationsPage struct {
	Items      []Annotation `json:"annotations"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// HasMore reports whether another page follows this one.
func (p *AnnotationsPage) HasMore() bool {
	return p.NextCursor != ""
}
