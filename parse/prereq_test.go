package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tritonlabs/webreg/raw"
	"github.com/tritonlabs/webreg/types"
)

func TestPrerequisites(t *testing.T) {
	rows := []raw.Prerequisite{
		{Type: "COURSE", PrereqSeqID: "001", SubjectCode: "CSE ", CourseCode: " 21", CourseTitle: "Math/Algorithm&Systems Analys"},
		{Type: "COURSE", PrereqSeqID: "001", SubjectCode: "MATH", CourseCode: "154", CourseTitle: "Discrete Math & Graph Theory"},
		{Type: "COURSE", PrereqSeqID: "002", SubjectCode: "CSE ", CourseCode: " 12", CourseTitle: "Basic Data Struct & OO Design"},
		{Type: "TEST", TestTitle: " AP Computer Science A "},
	}

	info := Prerequisites(rows)
	require.Len(t, info.CoursePrerequisites, 2)

	// Rows sharing a sequence ID are alternatives within one group.
	assert.Equal(t, []types.CoursePrerequisite{
		{SubjCourseID: "CSE 21", CourseTitle: "Math/Algorithm&Systems Analys"},
		{SubjCourseID: "MATH 154", CourseTitle: "Discrete Math & Graph Theory"},
	}, info.CoursePrerequisites[0])
	assert.Equal(t, []types.CoursePrerequisite{
		{SubjCourseID: "CSE 12", CourseTitle: "Basic Data Struct & OO Design"},
	}, info.CoursePrerequisites[1])

	assert.Equal(t, []string{"AP Computer Science A"}, info.ExamPrerequisites)
}

func TestPrerequisitesEmpty(t *testing.T) {
	info := Prerequisites(nil)
	assert.Empty(t, info.CoursePrerequisites)
	assert.Empty(t, info.ExamPrerequisites)
}
