// Package education coordinates a small team of advisory prompts to answer
// career and course questions.
package education

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shivamsuchak/q-revised/internal/completion"
	"github.com/shivamsuchak/q-revised/internal/metrics"
	"github.com/shivamsuchak/q-revised/internal/textutil"
)

// Team chains a career advisor, a course recommender, and a coordinating
// leader into one guidance response.
type Team struct {
	client completion.Client
	logger *slog.Logger
}

// NewTeam creates the education advisory team. A nil client puts it in
// fallback-only mode.
func NewTeam(client completion.Client, logger *slog.Logger) *Team {
	return &Team{client: client, logger: logger}
}

// Guidance answers an education or career question. It never returns an
// error; failures produce templated advice.
func (t *Team) Guidance(ctx context.Context, query string) string {
	if t.client == nil {
		metrics.FallbackResponses.WithLabelValues("education").Inc()
		return mockGuidance(query)
	}

	careerAdvice, err := t.client.Complete(ctx, careerPrompt(query))
	if err != nil {
		t.logger.Warn("Career advisor failed, using fallback", "error", err)
		metrics.FallbackResponses.WithLabelValues("education").Inc()
		return mockGuidance(query)
	}

	courseAdvice, err := t.client.Complete(ctx, coursePrompt(query))
	if err != nil {
		t.logger.Warn("Course recommender failed, using fallback", "error", err)
		metrics.FallbackResponses.WithLabelValues("education").Inc()
		return mockGuidance(query)
	}

	synthesis, err := t.client.Complete(ctx, leaderPrompt(query, careerAdvice, courseAdvice))
	if err != nil {
		t.logger.Warn("Team leader failed, using fallback", "error", err)
		metrics.FallbackResponses.WithLabelValues("education").Inc()
		return mockGuidance(query)
	}

	return textutil.ExtractContent(synthesis)
}

func careerPrompt(query string) string {
	return fmt.Sprintf(`You are an expert career guidance counselor with deep knowledge of job markets, career paths, and professional development strategies.

Instructions:
- Analyze career goals and aspirations to provide tailored advice.
- Consider current job market trends when recommending career paths.
- Provide specific action steps for career development.
- Include information about expected salaries, growth opportunities, and required skills.
- Always consider both short-term and long-term career objectives in your recommendations.

User query: %s`, query)
}

func coursePrompt(query string) string {
	return fmt.Sprintf(`You are a specialized education advisor who recommends relevant courses, certifications, and learning resources.

Instructions:
- Tailor recommendations based on the student's background, goals, and learning style.
- Include both academic courses and practical skill development resources.
- Provide specific course names, platforms, and estimated completion times.
- Consider prerequisites and logical learning sequences when recommending courses.
- Balance theoretical knowledge and practical applications in your recommendations.

User query: %s`, query)
}

func leaderPrompt(query, careerAdvice, courseAdvice string) string {
	return fmt.Sprintf(`You are the leader of an education advisory team, coordinating career guidance and course recommendations.

The user asked: %s

Your Career Advisor responded:
%s

Your Course Recommender responded:
%s

Synthesize these inputs into a comprehensive, coherent response. Ensure all advice is practical, specific, and actionable. Present the information in a clear, well-organized format with appropriate headings and bullet points.`, query, careerAdvice, courseAdvice)
}

func mockGuidance(query string) string {
	queryLower := strings.ToLower(query)

	if strings.Contains(queryLower, "data scientist") || strings.Contains(queryLower, "data science") {
		return `# Career Path: Data Scientist

## Recommended Education & Courses

To become a data scientist, I recommend the following learning path:

1. Foundational Courses:
   - Introduction to Programming (Python or R)
   - Mathematics for Data Science (Linear Algebra, Calculus)
   - Statistics and Probability
   - Introduction to Databases and SQL

2. Core Data Science Courses:
   - Data Cleaning and Preprocessing
   - Data Visualization
   - Machine Learning Fundamentals
   - Deep Learning Basics
   - Big Data Technologies (Spark, Hadoop)

3. Specialized Skills:
   - Natural Language Processing
   - Computer Vision
   - Time Series Analysis
   - Recommendation Systems

## Career Outlook

The data science field offers excellent growth opportunities with median salaries ranging from $95,000 to $150,000 depending on location and experience. Key industries hiring data scientists include tech, healthcare, finance, and e-commerce.

## Actionable Next Steps:

1. Start with a Python programming course on Coursera or edX
2. Take free statistics courses on Khan Academy
3. Complete a comprehensive data science bootcamp like DataCamp or Codecademy
4. Build a portfolio of 3-5 projects demonstrating your skills
5. Network with data professionals on LinkedIn and through local meetups

This career path typically takes 1-2 years of focused learning before landing your first data science role.`
	}

	if strings.Contains(queryLower, "web developer") || strings.Contains(queryLower, "web development") {
		return `# Career Path: Web Developer

## Recommended Education & Courses

To become a web developer, I recommend the following learning path:

1. Frontend Development:
   - HTML & CSS Fundamentals
   - JavaScript Programming
   - Responsive Web Design
   - Modern Frontend Frameworks (React, Vue, or Angular)

2. Backend Development:
   - Server-side Programming (Node.js, Python, or PHP)
   - Database Design and Management
   - REST API Development
   - Authentication and Authorization

3. Additional Skills:
   - Git Version Control
   - Web Security Fundamentals
   - Performance Optimization
   - Deployment and DevOps Basics

## Career Outlook

Web development offers diverse opportunities with entry-level salaries around $70,000 and senior positions reaching $120,000+. The field is expected to grow 13% through 2030, faster than average job growth.

## Actionable Next Steps:

1. Start with The Odin Project or freeCodeCamp's comprehensive web development curriculum
2. Build a personal website to practice your skills
3. Take a JavaScript course on Udemy or Coursera
4. Learn a frontend framework like React through official documentation and tutorials
5. Deploy projects using free services like Netlify or Vercel

Many successful web developers are self-taught. With 6-12 months of dedicated learning, you can build a portfolio ready for job applications.`
	}

	return fmt.Sprintf(`# Career and Education Guidance: %s

## Education Recommendations

Based on your interest in "%s", I recommend exploring the following educational pathways:

1. Formal Education:
   - Bachelor's degree in a related field
   - Specialized certifications from accredited institutions
   - Online courses from platforms like Coursera, edX, or Udemy

2. Skill Development:
   - Technical skills specific to this field
   - Soft skills like communication and problem-solving
   - Project-based learning through personal projects

3. Learning Resources:
   - Online tutorials and documentation
   - Books and academic papers
   - YouTube channels and podcasts

## Career Considerations

This field offers various career paths with different requirements and growth opportunities. Consider factors like:

- Entry requirements for different positions
- Salary expectations and growth potential
- Work-life balance and job satisfaction
- Geographic demand and remote work options

## Next Steps

1. Research specific programs and courses in this area
2. Connect with professionals in the field for mentorship
3. Build a portfolio demonstrating relevant skills
4. Join communities and forums related to this interest

Would you like more specific recommendations about particular aspects of this field?`, query, query)
}
