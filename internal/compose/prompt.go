package compose

import (
	"bytes"
	"encoding/json"
	"strings"

	"resume-composer/internal/profiles"
)

// SystemMessage frames the model as a resume writer.
const SystemMessage = "You are an expert resume writer, skilled at tailoring resume content to specific job descriptions based on a user's profile."

const promptTemplate = `**Goal:** Generate tailored resume sections (Summary, Experience bullet points, Skills) for a specific job application based on the provided user profile and job description.

**User Profile:**
` + "```json" + `
{{PROFILE}}
` + "```" + `

**Job Description:**
` + "```text" + `
{{JOB_DESCRIPTION}}
` + "```" + `

**Instructions:**
1.  **Analyze** the user profile and the job description.
2.  **Identify** the key requirements, skills, and experiences mentioned in the job description.
3.  **Match** these requirements with the user's profile information (summary, experiences, skills, projects, education, certifications).
4.  **Generate** the following resume content, tailoring it specifically to the job description:
    *   **Professional Summary:** A concise (3-4 sentence) summary highlighting the most relevant qualifications and experience for THIS job.
    *   **Tailored Experience Bullet Points:** For EACH relevant experience entry in the user's profile, generate 2-3 impactful bullet points using the STAR method (Situation, Task, Action, Result) that directly address the requirements of the target job description. Use strong action verbs. If an experience is not relevant, skip it.
    *   **Relevant Skills List:** Extract and list the most relevant skills (technical and soft) from the user's profile that match the job description. Categorize them if appropriate (e.g., Programming Languages, Tools, Soft Skills).
5.  **Format:** Present the output clearly, using markdown for sections (e.g., ## Professional Summary).

**Output:**
Generate only the tailored resume content as requested above. Do not include greetings or introductory phrases.
`

// BuildPrompt renders the user prompt. Equal inputs give byte-identical output.
func BuildPrompt(snapshot profiles.Snapshot, jobDescription string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return "", err
	}

	r := strings.NewReplacer(
		"{{PROFILE}}", strings.TrimRight(buf.String(), "\n"),
		"{{JOB_DESCRIPTION}}", jobDescription,
	)
	return r.Replace(promptTemplate), nil
}
