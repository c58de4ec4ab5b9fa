package prompt

import (
	"fmt"
	"math/rand"
	"strings"

	"lottie-studio/api/internal/config"
	"lottie-studio/api/internal/roster"
)

const maxVocabularyWords = 5

// responseSchema tells the generation service exactly what JSON to return.
// It is appended verbatim to every composed prompt.
const responseSchema = "\nThe expected output should be in the following JSON format:\n" +
	"{\n" +
	"    \"media\": {\n" +
	"        \"style\": \"<Describe the best style of image that visually represents the scenario here>\"\n" +
	"    },\n" +
	"    \"sentence\": \"<The reading activity text goes here>\",\n" +
	"    \"questions\": {\n" +
	"        \"1\": { \"sentence\": \"<Question 1 text goes here>\", \"answer\": \"<Question 1 answer goes here>\" },\n" +
	"        \"2\": { \"sentence\": \"<Question 2 text goes here>\", \"answer\": \"<Question 2 answer goes here>\" },\n" +
	"        \"3\": { \"sentence\": \"<Question 3 text goes here>\", \"answer\": \"<Question 3 answer goes here>\" }\n" +
	"    }\n" +
	"}\n"

// Compose renders the generation prompt. Section order is fixed: base
// instruction, student names, custom premise, sampled vocabulary,
// personalization sentence, response schema. All randomness comes from rng so
// the composition itself is deterministic.
func Compose(promptCfg config.PromptConfig, vocabulary []string, datum any, personalize config.PersonalizeConf, students []roster.Student, rng *rand.Rand) string {
	var b strings.Builder
	b.WriteString("Please generate a short reading activity containing a brief paragraph of text (100 seconds reading time) based on the following details:\n\n: ")

	if promptCfg.IncludeStudents {
		names := make([]string, 0, len(students))
		for _, s := range students {
			names = append(names, s.FirstName+" "+s.LastName)
		}
		fmt.Fprintf(&b, "In this activity, the students involved are: %s.\n", strings.Join(names, ", "))
	}

	if promptCfg.Premise.IncludeCustomPremise && promptCfg.Premise.Text != "" {
		fmt.Fprintf(&b, "The central theme of the activity is: %q\n", promptCfg.Premise.Text)
	}

	fmt.Fprintf(&b, "The following vocabulary words should be included and practiced: %s.\n",
		strings.Join(sampleWords(vocabulary, maxVocabularyWords, rng), ", "))

	if personalize.Active && datum != nil {
		if s := strings.TrimSpace(fmt.Sprintf("%v", datum)); s != "" {
			fmt.Fprintf(&b, "The scenario should be personalized around the topic %q, which evokes its provided description.\n", s)
		}
	}

	b.WriteString(responseSchema)
	return b.String()
}

// sampleWords picks up to n words uniformly at random without replacement,
// fewer when the pool is smaller.
func sampleWords(words []string, n int, rng *rand.Rand) []string {
	if len(words) <= n {
		out := make([]string, len(words))
		copy(out, words)
		return out
	}
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(words))[:n] {
		out = append(out, words[i])
	}
	return out
}
