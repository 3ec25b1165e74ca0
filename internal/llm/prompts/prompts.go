// Package prompts builds the prompt text fed into the generation service.
// Each builder is a pure function of the request and, where relevant, one
// outline module; the rest of the system treats the returned strings as
// opaque.
package prompts

import (
	"fmt"
	"strings"

	"github.com/avraj/courseforge/internal/model"
)

// Optimize asks for language-and-culture guidance used to improve the
// outline prompt.
func Optimize(req model.GenerateRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("As a native %s speaker and education expert, provide guidance on:\n\n", req.Language))
	sb.WriteString(fmt.Sprintf("1. How to best structure educational content for %s speakers\n", req.Language))
	sb.WriteString(fmt.Sprintf("2. Any cultural elements to incorporate when teaching %q in %s\n", req.Topic, req.Language))
	sb.WriteString(fmt.Sprintf("3. Common pedagogical approaches in %s-speaking regions\n", req.Language))
	sb.WriteString(fmt.Sprintf("4. Key terminology for %q in %s\n\n", req.Topic, req.Language))
	sb.WriteString("Format as a concise instruction paragraph.\n")
	return sb.String()
}

// Outline asks for the full course outline. The format contract at the end
// is what the outline extractor parses.
func Outline(req model.GenerateRequest, insights string) string {
	var sb strings.Builder
	if insights != "" {
		sb.WriteString(fmt.Sprintf("Based on these insights about teaching in %s: %s\n\n", req.Language, insights))
	}
	sb.WriteString("Create a comprehensive, culturally-appropriate course outline with the following details:\n\n")
	sb.WriteString("Topic: " + req.Topic + "\n")
	if desc := strings.TrimSpace(req.Description); desc != "" {
		sb.WriteString("Description: " + desc + "\n")
	}
	sb.WriteString("Language: " + req.Language + "\n")
	sb.WriteString("Difficulty: " + req.Difficulty + "\n\n")
	sb.WriteString(fmt.Sprintf("Generate a detailed course outline with %d modules. ", req.ModuleCount))
	sb.WriteString("For each module include:\n\n")
	sb.WriteString("1. A clear, engaging title\n")
	sb.WriteString("2. 4-6 specific learning objectives as bullet points\n")
	sb.WriteString("3. Each module should build logically on previous ones\n\n")
	sb.WriteString("Format each module as:\n")
	sb.WriteString("Module X: [Title]\nObjectives:\n- [Objective 1]\n- [Objective 2]\n...\n---\n")
	return sb.String()
}

// Lesson asks for the lesson content of one module.
func Lesson(req model.GenerateRequest, stub model.ModuleStub) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create a comprehensive lesson in %s for the topic '%s' at %s level.\n\n",
		req.Language, stub.Title, req.Difficulty))
	sb.WriteString("Objectives: " + strings.Join(stub.Objectives, ", ") + ".\n\n")
	sb.WriteString("Instructions:\n")
	sb.WriteString(fmt.Sprintf("1. Write in authentic, natural %s\n", req.Language))
	sb.WriteString(fmt.Sprintf("2. Include culturally relevant examples for %s speakers\n", req.Language))
	sb.WriteString("3. Include clear explanations, practical examples, and exercises\n")
	sb.WriteString("4. Structure with headings, subheadings, and short paragraphs\n")
	sb.WriteString(fmt.Sprintf("5. Include terminology in both %s and English where helpful\n", req.Language))
	sb.WriteString(fmt.Sprintf("Write content that a native %s teacher would create.\n", req.Language))
	return sb.String()
}

// Quiz asks for multiple-choice questions in the exact line format the quiz
// extractor's state machine recognizes.
func Quiz(req model.GenerateRequest, stub model.ModuleStub) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create 10-20 culturally appropriate multiple-choice quiz questions in %s "+
		"to test understanding of '%s' at %s level.\n\n", req.Language, stub.Title, req.Difficulty))
	sb.WriteString("For each question:\n")
	sb.WriteString(fmt.Sprintf("1. Write a clear question in natural %s\n", req.Language))
	sb.WriteString("2. Provide 4 options (A, B, C, D)\n")
	sb.WriteString("3. Indicate the correct answer\n")
	sb.WriteString("4. Add a brief explanation for why it's correct\n\n")
	sb.WriteString("Format as:\nQ1. [Question]\nA. [Option]\nB. [Option]\nC. [Option]\nD. [Option]\nCorrect: [Letter]\nExplanation: [Brief explanation]\n")
	return sb.String()
}

// Assignments asks for graded practical assignments for one module.
func Assignments(req model.GenerateRequest, stub model.ModuleStub) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Design 2 practical assignments for '%s' in %s, aligned with these objectives: %s.\n\n",
		stub.Title, req.Language, strings.Join(stub.Objectives, ", ")))
	sb.WriteString("Requirements:\n")
	sb.WriteString(fmt.Sprintf("1. Make assignments culturally relevant to %s speakers\n", req.Language))
	sb.WriteString(fmt.Sprintf("2. Suitable for %s level learners\n", req.Difficulty))
	sb.WriteString("3. Include clear instructions, evaluation criteria, and estimated completion time\n")
	sb.WriteString("4. One shorter assignment (30-60 minutes) and one in-depth project (2-3 hours)\n\n")
	sb.WriteString("Format each assignment with a title line starting with 'Assignment:', ")
	sb.WriteString("section headers such as '## 3 Mark Questions', and numbered items under each section.\n")
	return sb.String()
}

// Resources asks for supplementary learning resources for one module.
func Resources(req model.GenerateRequest, stub model.ModuleStub) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recommend 3-5 learning resources for students studying '%s' in %s.\n\n",
		stub.Title, req.Language))
	sb.WriteString("Include a mix of:\n")
	sb.WriteString(fmt.Sprintf("1. Books or textbooks in %s\n", req.Language))
	sb.WriteString(fmt.Sprintf("2. Online resources (websites, articles) in %s\n", req.Language))
	sb.WriteString(fmt.Sprintf("3. Tools or software with %s support\n\n", req.Language))
	sb.WriteString("For each resource, provide title, brief description, and why it's valuable.\n")
	return sb.String()
}

// VideoQueries asks for ranked video search phrases for one module.
func VideoQueries(req model.GenerateRequest, stub model.ModuleStub) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate 3 YouTube search phrases in %s for the topic '%s'.\n\n",
		req.Language, stub.Title))
	sb.WriteString("Guidelines:\n")
	sb.WriteString("1. Each phrase should be 5-8 words\n")
	sb.WriteString(fmt.Sprintf("2. Include '%s' as one of the search terms\n", req.Language))
	sb.WriteString(fmt.Sprintf("3. Include terms like 'tutorial', 'lesson', or 'how to' in %s\n", req.Language))
	sb.WriteString(fmt.Sprintf("4. Target %s level content\n\n", req.Difficulty))
	sb.WriteString("Return only the search phrases, one per line, no numbering or formatting.\n")
	return sb.String()
}
