package models

type RevenueReport struct {
	Revenue      int64 `json:"revenue"`
	Participants int   `json:"participants"`
	CourseCount  int   `json:"course_count"`
}
