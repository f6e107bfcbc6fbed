package roster

import "testing"

func TestClassifyPayor(t *testing.T) {
	tests := []struct {
		response string
		want     string
	}{
		{"Post-9/11 GI Bill (Chapter 33)", "CH 33"},
		{"post 9/11", "CH 33"},
		{"ch33", "CH 33"},
		{"GI Bill", "CH 33"},
		{"Chapter 31 Voc Rehab", "CH 31"},
		{"VR&E", "CH 31"},
		{"Dependents' Educational Assistance (DEA, Chapter 35)", "CH 35"},
		{"dependent of a veteran", "CH 35"},
		{"Montgomery GI Bill", "CH 30"},
		{"MGIB-AD", "CH 30"},
		{"Selected Reserve (1606)", "CH 1606"},
		{"National Guard", "CH 1606"},
		{"CalVet College Fee Waiver", "CALVET"},
		{"cal-vet", "CALVET"},
		{"I am in the EOPS program", "EOPS"},
		{"none of the above", "SELF"},
		{NoProgram, "SELF"},
		{"", "SELF"},
		{"self pay", "SELF"},
	}
	for _, tt := range tests {
		t.Run(tt.response, func(t *testing.T) {
			if got := ClassifyPayor(tt.response); got != tt.want {
				t.Errorf("ClassifyPayor(%q) = %q, want %q", tt.response, got, tt.want)
			}
		})
	}
}

func TestClassifyPayorFirstRuleWins(t *testing.T) {
	// A response naming two chapters resolves to the earlier rule.
	if got := ClassifyPayor("Chapter 33, previously Chapter 31"); got != "CH 33" {
		t.Errorf("ClassifyPayor() = %q, want CH 33", got)
	}
}

func TestNormalizeProgram(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Post-9/11 GI Bill (Chapter 33)", "POST911 GI BILL CHAPTER 33"},
		{"  eops \t program ", "EOPS PROGRAM"},
		{"cal-vet!!", "CALVET"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeProgram(tt.in); got != tt.want {
			t.Errorf("normalizeProgram(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
