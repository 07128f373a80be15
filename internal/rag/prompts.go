package rag

import (
	"fmt"
	"strings"

	"notebook-ai/internal/llm"
	"notebook-ai/internal/storage"
)

const systemPrompt = "You are an intelligent assistant that helps explore and understand a set of documents. " +
	"Answer questions based EXCLUSIVELY on the context provided. " +
	"Be precise, cite the sources when possible, and if the answer is not in the context, say that you do not have the information. " +
	"Do not use external knowledge. Do not make up answers. Explain the content of the requested files clearly and understandably."

const condensePrompt = "Given the following conversation and a follow up question, rephrase the follow up question " +
	"to be a standalone question, in its original language.\n\n" +
	"Chat History:\n%s\nFollow Up Input: %s\nStandalone question:"

// NoContextAnswer is returned when retrieval finds no passage for the question.
const NoContextAnswer = "I could not find this information in the notebook's documents."

// buildAnswerMessages stuffs the retrieved passages into the system prompt.
func buildAnswerMessages(question string, passages []string) []llm.Message {
	system := systemPrompt + "\n\nContext:\n" + strings.Join(passages, "\n\n")
	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: question},
	}
}

func buildCondenseMessages(history []storage.MessageRecord, question string) []llm.Message {
	var b strings.Builder
	for _, m := range history {
		switch m.Role {
		case storage.RoleAssistant:
			b.WriteString("Assistant: ")
		default:
			b.WriteString("Human: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return []llm.Message{
		{Role: llm.RoleUser, Content: fmt.Sprintf(condensePrompt, b.String(), question)},
	}
}
