package analysis

import (
	"fmt"

	"github.com/xkilldash9x/prahari/api/schemas"
)

const analystPersona = `You are PrahariAI, an elite cybersecurity AI agent for the National Security Cyber Cell.
Your task is to detect bots, impersonators, and disinformation agents.`

const analyzePromptTemplate = `Analyze the following profile metadata:
User Handle: %s
Bio String: %s
Content Vector: %s

Be strict. Look for:
1. Impersonation of government officials or support desks.
2. Urgency cues (phishing).
3. Bot-like repetitive syntax or crypto-scam keywords.

Output strictly in JSON.`

const scanPromptTemplate = `Simulate a threat detection scan for the topic: %q.
Generate %d highly realistic, dangerous profiles that would flag a national security system.

Profiles should include:
1. An impersonator of a relevant authority figure or support channel.
2. A bot spreading polarized disinformation.
3. A financial scammer exploiting the topic.

Make the usernames and bios look authentic to the platform (e.g., use 'Official' in fake names).`

func buildAnalyzePrompt(username, bio, recentPosts string) string {
	return fmt.Sprintf(analyzePromptTemplate, username, bio, recentPosts)
}

func buildScanPrompt(topic string, count int) string {
	return fmt.Sprintf(scanPromptTemplate, topic, count)
}

// scanResultSchema declares the verdict shape the model must return.
var scanResultSchema = &schemas.ResponseSchema{
	Type: schemas.TypeObject,
	Properties: map[string]*schemas.ResponseSchema{
		"trustScore": {
			Type:        schemas.TypeNumber,
			Description: "A score from 0 to 100. 100 is verified/safe, 0 is confirmed bot/malicious.",
		},
		"isSuspicious": {
			Type:        schemas.TypeBoolean,
			Description: "Boolean flag for immediate threat tagging.",
		},
		"flags": {
			Type:        schemas.TypeArray,
			Items:       &schemas.ResponseSchema{Type: schemas.TypeString},
			Description: "Technical indicators (e.g., 'High Entropy Username', 'Botnet Coordination', 'Scam Pattern Match').",
		},
		"analysis": {
			Type:        schemas.TypeString,
			Description: "Technical justification for the score. Use cyber-security terminology.",
		},
		"threatLevel": {
			Type:        schemas.TypeString,
			Description: "Categorize as Low, Medium, High, or Critical.",
		},
		"suggestedAction": {
			Type:        schemas.TypeString,
			Description: "Operational next steps (e.g., 'Monitor', 'Report to Cyber Cell', 'Immediate Takedown').",
		},
	},
	Required: []string{"trustScore", "isSuspicious", "flags", "analysis", "threatLevel", "suggestedAction"},
}

// suspectProfilesSchema declares the list shape returned by a topic scan.
var suspectProfilesSchema = &schemas.ResponseSchema{
	Type: schemas.TypeArray,
	Items: &schemas.ResponseSchema{
		Type: schemas.TypeObject,
		Properties: map[string]*schemas.ResponseSchema{
			"username": {Type: schemas.TypeString},
			"platform": {
				Type: schemas.TypeString,
				Enum: platformNames(),
			},
			"bio": {Type: schemas.TypeString},
			"recentPosts": {
				Type:        schemas.TypeString,
				Description: "A representative recent post content from this user.",
			},
		},
		Required: []string{"username", "platform", "bio", "recentPosts"},
	},
}

func platformNames() []string {
	names := make([]string, 0, len(schemas.Platforms))
	for _, p := range schemas.Platforms {
		names = append(names, string(p))
	}
	return names
}
