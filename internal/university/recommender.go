// Package university finds course information and recommendations for
// specific universities.
package university

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shivamsuchak/q-revised/internal/completion"
	"github.com/shivamsuchak/q-revised/internal/metrics"
	"github.com/shivamsuchak/q-revised/internal/textutil"
)

// Recommender answers university and course questions. A nil client puts
// it in fallback-only mode.
type Recommender struct {
	client completion.Client
	logger *slog.Logger
}

// NewRecommender creates the course recommender.
func NewRecommender(client completion.Client, logger *slog.Logger) *Recommender {
	return &Recommender{client: client, logger: logger}
}

const rolePrompt = `You are a university course recommendation assistant that helps find and recommend courses from specific universities.

Instructions:
- When asked about a university, search for accurate and up-to-date information about its programs and courses.
- Focus on providing course recommendations based on the specific university mentioned.
- Include details about course prerequisites, admission requirements, and program structure when available.
- Format responses in a readable way with headings and bullet points for better readability.
- Always prioritize official university sources over third-party information.

`

func (r *Recommender) complete(ctx context.Context, query string) (string, bool) {
	if r.client == nil {
		return "", false
	}
	text, err := r.client.Complete(ctx, rolePrompt+query)
	if err != nil {
		r.logger.Warn("University recommender completion failed, using fallback", "error", err)
		return "", false
	}
	return textutil.ExtractContent(text), true
}

// SearchCourses finds courses at a university, optionally limited to a
// field of study.
func (r *Recommender) SearchCourses(ctx context.Context, university, fieldOfStudy string) string {
	var query string
	if fieldOfStudy != "" {
		query = fmt.Sprintf("Find %s courses and programs at %s. Include requirements, curriculum, and admission details.", fieldOfStudy, university)
	} else {
		query = fmt.Sprintf("What are the best courses and degree programs offered by %s? Include information about popular majors, unique programs, and admission requirements.", university)
	}

	if text, ok := r.complete(ctx, query); ok {
		return text
	}
	metrics.FallbackResponses.WithLabelValues("university").Inc()
	return mockCourses(university, fieldOfStudy)
}

// Info returns general information about a university.
func (r *Recommender) Info(ctx context.Context, university string) string {
	query := fmt.Sprintf("Information about %s. Include location, ranking, history, and notable programs.", university)

	if text, ok := r.complete(ctx, query); ok {
		return text
	}
	metrics.FallbackResponses.WithLabelValues("university").Inc()
	return mockInfo(university)
}

// Recommend produces personalized course recommendations.
func (r *Recommender) Recommend(ctx context.Context, university, interests, academicLevel, careerGoals string) string {
	if academicLevel == "" {
		academicLevel = "undergraduate"
	}

	parts := []string{fmt.Sprintf("Recommend %s courses at %s", academicLevel, university)}
	if interests != "" {
		parts = append(parts, fmt.Sprintf("for a student interested in %s", interests))
	}
	if careerGoals != "" {
		parts = append(parts, fmt.Sprintf("who wants to pursue a career in %s", careerGoals))
	}
	parts = append(parts, "Include course descriptions, prerequisites, career opportunities, and why these courses are recommended.")

	if text, ok := r.complete(ctx, strings.Join(parts, " ")); ok {
		return text
	}
	metrics.FallbackResponses.WithLabelValues("university").Inc()
	return mockRecommendations(university, interests, academicLevel, careerGoals)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func mockCourses(university, fieldOfStudy string) string {
	if strings.Contains(strings.ToLower(university), "mannheim") {
		if fieldOfStudy != "" && strings.Contains(strings.ToLower(fieldOfStudy), "data") {
			return `# Data Science Courses at University of Mannheim

The University of Mannheim offers several excellent data science and analytics programs:

## Bachelor Programs
- **B.Sc. in Business Informatics**: Combines computer science with business administration
  - Key courses: Database Systems, Data Mining, Business Intelligence
  - Duration: 6 semesters
  - Prerequisites: Good mathematics background

## Master Programs
- **M.Sc. in Data Science**: Premier program for advanced data analysis
  - Core courses: Machine Learning, Big Data Analytics, Statistical Modeling
  - Electives: Deep Learning, Natural Language Processing, Time Series Analysis
  - Duration: 4 semesters
  - Admission requirements: Bachelor's in a quantitative field with strong programming skills

- **M.Sc. in Business Informatics**: Focus on enterprise data and systems
  - Specialization in Business Intelligence available
  - Courses include Data Warehousing and Data Integration

## Key Features of Mannheim's Data Programs
- Strong industry connections with SAP and other tech companies
- International environment with courses in English
- Excellent job placement rates in German tech sector

For the most up-to-date information, visit the official University of Mannheim website or contact their admissions office.`
		}

		return `# Recommended Courses at University of Mannheim

The University of Mannheim is renowned for its programs in business, economics, and social sciences. Here are some of their standout programs:

## Business and Economics
- **B.Sc. in Business Administration**: One of Germany's top-rated business programs
  - Key subjects: Accounting, Finance, Marketing, Operations
  - Duration: 6 semesters
  - Taught partially in English

- **M.Sc. in Economics**: Rigorous program with quantitative focus
  - Specializations: Competition and Regulation Economics, Economic Policy, Finance
  - Strong research orientation
  - Duration: 4 semesters

## Social Sciences
- **B.A. in Political Science**: Focus on comparative politics and international relations
  - Strong methodological training in quantitative and qualitative research
  - Exchange opportunities with Sciences Po, LSE and other top universities

- **M.A. in Sociology**: Research-oriented program with focus on European societies
  - Specializations in migration, inequality, or family sociology

## Computer Science and Mathematics
- **B.Sc. in Business Informatics**: Integration of IT and business knowledge
  - Strong programming foundation with business applications
  - Excellent employment prospects

## Notable Features
- Semester structure aligned with international universities (fall/spring)
- Strong emphasis on internships and practical experience
- Excellent career services and industry connections
- German language courses available for international students

For the most current information, visit the university's official website.`
	}

	fieldText := ""
	if fieldOfStudy != "" {
		fieldText = fmt.Sprintf(" in %s", fieldOfStudy)
	}
	return fmt.Sprintf(`# Recommended Courses at %s

This is a mock response as I don't have real-time information about %s's courses%s.

To get accurate course recommendations:
1. Visit the official %s website
2. Check their course catalog or program listings
3. Contact their admissions office for the most up-to-date information

For real course recommendations, please ensure the search API connections are properly configured.`, university, university, fieldText, university)
}

func mockInfo(university string) string {
	if strings.Contains(strings.ToLower(university), "mannheim") {
		return `# University of Mannheim

## Overview
The University of Mannheim is one of Germany's leading research universities, particularly renowned for its programs in business administration, economics, and social sciences. Founded in 1967, it evolved from the earlier School of Commerce established in 1907.

## Location
- Located in Mannheim, Baden-Württemberg, Germany
- Main campus is housed in the impressive Mannheim Palace (Schloss)
- City center location with excellent transportation links

## Rankings and Reputation
- Consistently ranked among the top business schools in Europe
- THE World University Rankings: Among top 200 globally
- #1 in Germany for business studies according to multiple rankings
- Strong international reputation, especially for economics and business

## Academic Structure
- School of Business Informatics and Mathematics
- School of Law and Economics
- School of Social Sciences
- School of Humanities
- Mannheim Business School (for executive education)

## Notable Programs
- Bachelor/Master in Business Administration
- Bachelor/Master in Economics
- Master in Business Informatics
- Master in Data Science
- Master in Management
- MBA and EMBA programs

## International Profile
- Over 20% international students
- Extensive exchange program with 450+ partner universities
- Most master's programs offered entirely in English
- International academic staff

## Industry Connections
- Strong ties to major corporations like SAP, BASF, and Daimler
- Excellent career services and job placement rates
- Regular recruitment events with top employers

This information represents typical details about the University of Mannheim but may not reflect the most current information.`
	}

	return fmt.Sprintf(`# %s

This is a mock response as I don't have real-time information about %s.

To get accurate information about this university:
1. Visit their official website
2. Check university ranking websites like Times Higher Education or QS World Rankings
3. Contact their admissions or information office

For real university information, please ensure the search API connections are properly configured.`, university, university)
}

func mockRecommendations(university, interests, academicLevel, careerGoals string) string {
	interestsText := ""
	if interests != "" {
		interestsText = fmt.Sprintf(" in %s", interests)
	}
	careerText := ""
	if careerGoals != "" {
		careerText = fmt.Sprintf(" for a career in %s", careerGoals)
	}
	levelTitle := titleCase(academicLevel)

	if strings.Contains(strings.ToLower(university), "mannheim") {
		if interests != "" && strings.Contains(strings.ToLower(interests), "data") {
			return fmt.Sprintf(`# Personalized %s Course Recommendations at University of Mannheim%s%s

Based on your interest in data science at University of Mannheim, here are personalized recommendations:

## Core Program
- **M.Sc. in Data Science** (4 semesters)
  - Perfect match for your interests with strong technical foundation
  - Excellent preparation for data science careers
  - Admission requires strong mathematics and programming skills

## Key Courses to Consider
1. **Advanced Machine Learning**: Essential for modern data science applications
2. **Big Data Systems**: Working with distributed data processing frameworks
3. **Statistical Modeling**: Strong statistical foundation for data analysis
4. **Deep Learning**: Neural networks and advanced AI techniques
5. **Data Visualization**: Communicating insights effectively

## Complementary Electives
- **Business Analytics**: Applying data science in business contexts
- **Ethics in AI**: Important for responsible data science practice
- **Industry Seminar**: Connect with potential employers

## Career Outlook
Graduates from this program typically find positions as:
- Data Scientists
- Machine Learning Engineers
- Business Intelligence Specialists
- Data Engineers
- Research Scientists

## Why This Path is Recommended
- Mannheim has exceptional faculty in data science
- The program has strong industry connections, particularly with SAP
- Curriculum is regularly updated to reflect industry needs
- Excellent job placement rates in German and European tech companies

For the most up-to-date and accurate information, please contact the University of Mannheim directly.`, levelTitle, interestsText, careerText)
		}

		return fmt.Sprintf(`# Personalized %s Course Recommendations at University of Mannheim%s%s

## Recommended Program
Based on your profile, the **%s Program in Business Administration** would be an excellent fit.

## Key Courses to Consider
1. **Fundamentals of Business Administration**: Essential foundation course
2. **International Financial Reporting**: Highly regarded at Mannheim
3. **Marketing Management**: Strong practical component
4. **Business Analytics**: Data-driven decision making
5. **Corporate Strategy**: Case-study based approach

## Why These Recommendations
- Mannheim's Business School is consistently ranked #1 in Germany
- The program offers excellent flexibility to align with your interests
- Strong emphasis on practical experience and industry connections
- Excellent career services and placement record

## Next Steps
- Check specific admission requirements on the official university website
- Application deadlines are typically January (winter semester) and May (summer semester)
- Consider reaching out to current students through the university's ambassador program

This represents typical information about programs at Mannheim but may not reflect the most current options.`, levelTitle, interestsText, careerText, levelTitle)
	}

	return fmt.Sprintf(`# Personalized %s Course Recommendations at %s%s%s

This is a mock response as I don't have real-time information about courses at %s.

To get personalized course recommendations:
1. Visit the official %s website and explore their course catalog
2. Contact an academic advisor at the university
3. Reach out to the department that aligns with your interests
4. Attend a university open day or virtual information session

For real personalized recommendations, please ensure the search API connections are properly configured.`, levelTitle, university, interestsText, careerText, university, university)
}
