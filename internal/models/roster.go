package models

// ClassLabel is one of the four fixed class groups of a course.
type ClassLabel string

const (
	ClassA ClassLabel = "A"
	ClassB ClassLabel = "B"
	ClassC ClassLabel = "C"
	ClassD ClassLabel = "D"
)

// ClassLabels lists the fixed labels in reporting order.
var ClassLabels = []ClassLabel{ClassA, ClassB, ClassC, ClassD}

// Known reports whether the label is one of the four recognized groups.
// Students with any other label are excluded from every aggregate.
func (l ClassLabel) Known() bool {
	switch l {
	case ClassA, ClassB, ClassC, ClassD:
		return true
	}
	return false
}

// RosterEntry maps an enrolled student to their class group.
type RosterEntry struct {
	StudentID string     `bson:"student_id" json:"student_id"`
	CourseID  string     `bson:"course_id" json:"course_id"`
	Role      string     `bson:"role" json:"role"`
	Class     ClassLabel `bson:"class" json:"class"`
}
