package course

// examToCEFR is the closed mapping from course/exam name to CEFR proficiency
// tier. An unknown exam maps to the empty level; that is a data condition, not
// an error.
var examToCEFR = map[string]string{
	"KB0":         "pre-a1",
	"KB1":         "pre-a1",
	"STARTERS":    "pre-a1",
	"MOVERS":      "a1",
	"EMPOWER_A1":  "a1",
	"FLYERS":      "a2",
	"KEY":         "a2",
	"EMPOWER_A2":  "a2",
	"PET":         "b1",
	"EMPOWER_B1+": "b1",
	"FCE":         "b2",
	"CAE":         "c1",
	"CPE":         "c2",
}

func CourseToCEFR(exam string) string {
	return examToCEFR[exam]
}
