package service

import "fmt"

const lessonPromptTemplate = `
You are an AI educational assistant.

Create a structured and comprehensive lesson plan based on the topic: "%s".

Break down this topic into %d different subtopics. The output should be a well-formatted JSON object with the following structure:

{
  "title": "A compelling and creative title for the main lesson",
  "description": "A concise yet engaging overview of what the lesson is about",
  "subtopics": [
    {
      "title": "Subtopic 1 Title",
      "description": "A concise yet engaging overview of this subtopic",
      "definition": "Clear definition of this subtopic",
      "outcome": "What learners will achieve after studying this subtopic",
      "activities": ["2-3 interactive or reflective activities to reinforce learning"],
      "keyConcepts": ["2-3 core concepts specific to this subtopic"]
    }
  ]
}

The "subtopics" array must contain exactly %d objects with the fields shown above.
The lesson is aimed at %s learners.

Make the content suitable for learners and educators. Ensure clarity, educational value, and alignment with pedagogical best practices.

Return ONLY the JSON object, without any extra explanation or formatting.
`

func buildLessonPrompt(topic string, subtopicCount int, category string) string {
	return fmt.Sprintf(lessonPromptTemplate, topic, subtopicCount, subtopicCount, category)
}
