package doubts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/doubtsolver/internal/server/models"
)

// Answerer produces the solution for a question.
type Answerer interface {
	Answer(ctx context.Context, question, subject string, withImage bool) (*models.Answer, error)
}

// TemplateAnswerer fills a fixed step-by-step template with the question and
// subject. It stands in for a real model during local runs.
type TemplateAnswerer struct {
	now func() time.Time
}

func NewTemplateAnswerer() *TemplateAnswerer {
	return &TemplateAnswerer{now: time.Now}
}

var (
	imageSteps = []string{
		"Analyze the uploaded image",
		"Identify problem type and subject area",
		"Extract key information from visual elements",
		"Apply appropriate mathematical/scientific concepts",
		"Perform step-by-step calculations",
		"Verify and present final answer",
	}
	mathSteps = []string{
		"Analyze the given problem",
		"Identify required mathematical concepts",
		"Set up the equation or approach",
		"Perform calculations systematically",
		"Verify the solution",
		"Present final answer with explanation",
	}
	defaultSteps = []string{
		"Identify key concepts in the question",
		"Break down complex topics into parts",
		"Explain theoretical foundations",
		"Provide practical examples",
		"Connect concepts to real-world applications",
		"Summarize key takeaways",
	}
)

const imageTemplate = `I can see the %[1]s problem in your image. Based on the visual analysis:

**Problem Analysis:**
The image shows a problem statement or diagram that I've analyzed.

**Step-by-Step Solution:**

**Step 1:** Identify the key elements in the image
- Expressions or diagrams are clearly visible
- The problem type appears to be related to %[2]s

**Step 2:** Apply relevant formulas and concepts
- Using standard %[1]s principles
- Following systematic problem-solving approach

**Step 3:** Calculate the solution
- Performing necessary calculations
- Verifying the result

**Final Answer:** Based on the image analysis, the solution involves applying %[1]s concepts systematically.`

const mathTemplate = `Let me solve this %[2]s problem step by step:

**Given:** %[3]s

**Solution Process:**

**Step 1:** Understand the problem
- Identify what we need to find
- List the given information

**Step 2:** Choose the appropriate method
- Apply relevant mathematical concepts
- Use appropriate formulas

**Step 3:** Solve systematically
- Perform calculations step by step
- Show all working clearly

**Final Answer:** The solution demonstrates the systematic approach to solving this %[1]s problem.`

const defaultTemplate = `Here's a comprehensive explanation for your %[2]s question:

**Topic:** %[3]s

**Detailed Explanation:**

**Key Concepts:**
- Understanding the fundamental principles
- Connecting theory with practical applications
- Breaking down complex ideas into simpler parts

**Step-by-Step Breakdown:**
1. **Foundation:** Start with basic concepts
2. **Development:** Build upon these concepts
3. **Application:** Show how to use this knowledge
4. **Examples:** Provide relevant examples

**Summary:** This %[1]s concept is important because it helps understand the underlying principles and their real-world applications.`

func (a *TemplateAnswerer) Answer(ctx context.Context, question, subject string, withImage bool) (*models.Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lower := strings.ToLower(subject)
	var (
		solution string
		steps    []string
	)
	switch {
	case withImage:
		solution, steps = fmt.Sprintf(imageTemplate, lower, subject), imageSteps
	case lower == "mathematics" || lower == "math":
		solution, steps = fmt.Sprintf(mathTemplate, lower, subject, question), mathSteps
	default:
		solution, steps = fmt.Sprintf(defaultTemplate, lower, subject, question), defaultSteps
	}

	return &models.Answer{
		Solution:    solution,
		Steps:       append([]string(nil), steps...),
		GeneratedAt: a.now().UTC(),
	}, nil
}
