package generate

import (
	"fmt"
	"strings"
)

const promptTemplate = `Generate a %[1]s profile in the United States for UX research purposes. Ensure that the profile has complete details and a well-described short biography.

Include the following characteristics in exactly this format:
Name: [Name]
Age: [Age]
Gender: [Gender]
Ethnicity/Race: [Only choose from BLS-categorized ethnicities]
Income: [Exact salary amount with no dollar sign]
Primary motivations: [a short one-paragraph description of the %[1]s's reasons for becoming a %[1]s]
Short Biography: [a detailed one-paragraph biography describing the %[1]s's background, experience, and personality]

Only respond with the profile information for a single profile, with no filler text and no profile labels.`

// Prompt returns the profile request for an occupation label.
func Prompt(occupation string) string {
	return fmt.Sprintf(promptTemplate, strings.ToLower(strings.TrimSpace(occupation)))
}
