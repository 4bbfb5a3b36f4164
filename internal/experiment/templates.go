package experiment

// Experimental prompt templates live here, apart from the production
// strategies in the reflection package, so new candidates can be iterated on
// without touching production behavior. Templates use the same {content}
// placeholder as production strategies.

// VariantKindExperimental tags variants generated from an experimental template.
const VariantKindExperimental = "experimental"

// DefaultTemplates returns the experimental templates keyed by variant name.
// A fresh map is returned per call; generators treat their copy as immutable.
func DefaultTemplates() map[string]string {
	return map[string]string{
		"emotional_awareness_v1": "Here is a journal entry: '{content}'\n\nGenerate a single question for deeper reflection that validates emotional experiences while extending awareness",

		"perspective_v1": "Here is a journal entry: '{content}'\n\nGenerate a single question for deeper reflection that validates emotional experiences while offering an alternative perspective",

		"assumptions_v1": "Here is a journal entry: '{content}'\n\nGenerate a single question for deeper reflection that validates the writer's experience while gently challenging their assumptions",
	}
}

// DefaultVariantConfigs returns the variant set an experiment tests, in
// presentation order.
func DefaultVariantConfigs() []VariantConfig {
	return []VariantConfig{
		{Name: "emotional_awareness_v1", Kind: VariantKindExperimental, TemplateKey: "emotional_awareness_v1"},
		{Name: "perspective_v1", Kind: VariantKindExperimental, TemplateKey: "perspective_v1"},
		{Name: "assumptions_v1", Kind: VariantKindExperimental, TemplateKey: "assumptions_v1"},
	}
}
