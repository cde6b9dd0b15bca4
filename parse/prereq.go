package parse

import (
	"strings"

	"github.com/tritonlabs/webreg/raw"
	"github.com/tritonlabs/webreg/types"
)

// Prerequisites structures the prerequisites endpoint's rows. Course
// rows sharing a sequence ID are alternatives within one requirement
// group; every group must be satisfied. Test rows become exam
// prerequisites, any one of which satisfies all groups.
func Prerequisites(rows []raw.Prerequisite) types.PrerequisiteInfo {
	info := types.PrerequisiteInfo{
		CoursePrerequisites: [][]types.CoursePrerequisite{},
		ExamPrerequisites:   []string{},
	}
	groups := map[string]int{}
	for _, row := range rows {
		if row.Type == "TEST" {
			info.ExamPrerequisites = append(info.ExamPrerequisites, strings.TrimSpace(row.TestTitle))
			continue
		}
		prereq := types.CoursePrerequisite{
			SubjCourseID: strings.TrimSpace(row.SubjectCode) + " " + strings.TrimSpace(row.CourseCode),
			CourseTitle:  strings.TrimSpace(row.CourseTitle),
		}
		idx, ok := groups[row.PrereqSeqID]
		if !ok {
			idx = len(info.CoursePrerequisites)
			groups[row.PrereqSeqID] = idx
			info.CoursePrerequisites = append(info.CoursePrerequisites, []types.CoursePrerequisite{})
		}
		info.CoursePrerequisites[idx] = append(info.CoursePrerequisites[idx], prereq)
	}
	return info
}
