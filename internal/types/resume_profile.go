package types

// WorkExperience is one position held by the candidate.
type WorkExperience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Project is a personal, academic, or open-source project from the resume.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
}

// ResumeProfile is the structured form of an uploaded resume, produced once
// per document by LLM extraction.
type ResumeProfile struct {
	FullName        string           `json:"full_name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	LinkedIn        string           `json:"linkedin"`
	Education       []string         `json:"education"`
	WorkExperience  []WorkExperience `json:"work_experience"`
	TechnicalSkills []string         `json:"technical_skills"`
	SoftSkills      []string         `json:"soft_skills"`
	Certifications  []string         `json:"certifications"`
	Projects        []Project        `json:"projects"`
}

// FillDefaults replaces nil slices with empty ones, including nested
// project technology lists.
func (r *ResumeProfile) FillDefaults() {
	if r.Education == nil {
		r.Education = []string{}
	}
	if r.WorkExperience == nil {
		r.WorkExperience = []WorkExperience{}
	}
	if r.TechnicalSkills == nil {
		r.TechnicalSkills = []string{}
	}
	if r.SoftSkills == nil {
		r.SoftSkills = []string{}
	}
	if r.Certifications == nil {
		r.Certifications = []string{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}
}

// IsEmpty reports whether extraction produced no identifying content at all.
func (r *ResumeProfile) IsEmpty() bool {
	return r.FullName == "" && r.Email == "" &&
		len(r.WorkExperience) == 0 && len(r.TechnicalSkills) == 0 &&
		len(r.Education) == 0
}
