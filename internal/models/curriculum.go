package models

// Subsection is a leaf node of the course curriculum hierarchy.
type Subsection struct {
	ID    string `bson:"id" json:"id"`
	Title string `bson:"title" json:"title"`
}

// Chapter is a top-level curriculum node. The hierarchy is read-only here;
// it is defined and maintained outside the analytics service.
type Chapter struct {
	ID          string       `bson:"id" json:"id"`
	Title       string       `bson:"title" json:"title"`
	Subsections []Subsection `bson:"subsections" json:"subsections"`
}
