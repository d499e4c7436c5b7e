package affirmation

var defaultCategories = []Category{
	{ID: "manifestation", DisplayName: "Manifestation", Icon: "✨", Description: "Align with your highest timeline"},
	{ID: "abundance", DisplayName: "Abundance", Icon: "💰", Description: "Attract wealth and prosperity"},
	{ID: "confidence", DisplayName: "Confidence", Icon: "🦁", Description: "Step into your power"},
	{ID: "clarity", DisplayName: "Clarity", Icon: "🔮", Description: "Clear mind, clear path"},
	{ID: "love", DisplayName: "Love", Icon: "💖", Description: "Attract and nurture relationships"},
	{ID: "purpose", DisplayName: "Purpose", Icon: "🎯", Description: "Align with your soul's mission"},
	{ID: "health", DisplayName: "Health", Icon: "🌿", Description: "Vitality and wellbeing"},
	{ID: "success", DisplayName: "Success", Icon: "🏆", Description: "Achieve your goals"},
	{ID: "creativity", DisplayName: "Creativity", Icon: "🎨", Description: "Unlock your creative flow"},
	{ID: "peace", DisplayName: "Peace", Icon: "☮️", Description: "Inner calm and balance"},
}

var defaultAffirmations = map[string][]string{
	"manifestation": {
		"I am a powerful manifestor, and my thoughts shape my reality.",
		"The universe is conspiring to bring my desires into form.",
		"I am a magnet for miracles and synchronicities.",
		"My manifestations come to me with ease and perfect timing.",
		"I am in perfect alignment with my highest timeline.",
		"The quantum field responds to my focused intention.",
		"I release resistance and allow abundance to flow to me.",
		"My desires are already on their way to me.",
		"I trust in divine timing and divine order.",
		"I am a conscious creator of my reality.",
	},
	"abundance": {
		"Wealth flows to me from multiple sources.",
		"I am a money magnet and prosperity is my natural state.",
		"I am open and receptive to all the wealth life offers me.",
		"Money comes to me in expected and unexpected ways.",
		"I am worthy of wealth, success, and financial freedom.",
		"The universe is infinitely abundant, and so am I.",
		"I attract opportunities that create wealth and prosperity.",
		"My income grows exponentially.",
		"I am a powerful manifestor of financial abundance.",
		"Money is energy, and I am a conduit for positive financial flow.",
	},
	"confidence": {
		"I trust in my ability to create my desired reality.",
		"I am worthy of all the good in my life.",
		"I release all self-doubt and embrace my power.",
		"I am confident in my ability to navigate any situation.",
		"I am becoming the best version of myself each day.",
		"I trust myself and my intuition completely.",
		"I am worthy of success, love, and happiness.",
		"I release all fear and step into my power.",
		"I am confident in my unique gifts and abilities.",
		"I am becoming more confident with each passing moment.",
	},
	"clarity": {
		"My mind is clear, focused, and at peace.",
		"I trust my intuition to guide me to my highest good.",
		"I release all mental fog and embrace clarity.",
		"The answers I seek are within me.",
		"I am aligned with my highest purpose and truth.",
		"I trust the unfolding of my journey.",
		"I am open to receiving divine guidance.",
		"My mind is a powerful tool for creating my reality.",
		"I release all confusion and embrace understanding.",
		"I see my path with perfect clarity.",
	},
	"love": {
		"I am a magnet for loving, fulfilling relationships.",
		"I give and receive love freely and unconditionally.",
		"I am worthy of deep, meaningful connections.",
		"My heart is open to giving and receiving love.",
		"I attract relationships that honor and uplift me.",
		"I am complete and whole within myself.",
		"I release all past hurts and open my heart to love.",
		"I am a beacon of love and light.",
		"I am surrounded by love in all areas of my life.",
		"I am worthy of a love that feels like home.",
	},
	"purpose": {
		"I am aligned with my soul's purpose.",
		"My life has deep meaning and significance.",
		"I trust the journey of my soul's evolution.",
		"I am exactly where I need to be right now.",
		"My purpose unfolds perfectly in divine timing.",
		"I am a powerful creator of my reality.",
		"I trust the process of my becoming.",
		"I am living my soul's highest calling.",
		"My purpose is revealed to me step by step.",
		"I am a unique expression of the universe.",
	},
	"health": {
		"My body is a temple of vibrant health and vitality.",
		"I am grateful for my body's wisdom and resilience.",
		"Every cell in my body vibrates with energy and health.",
		"I am healing and becoming stronger every day.",
		"My body knows how to heal itself.",
		"I nourish my body with rest, movement, and care.",
		"I listen to what my body needs and I honor it.",
	},
	"success": {
		"I am building the life I want, one step at a time.",
		"Every challenge I meet makes me more capable.",
		"I finish what I start and I celebrate my progress.",
		"Success is drawn to my focus and consistency.",
		"I deserve the achievements I am working toward.",
		"My efforts compound into meaningful results.",
		"I act on my goals today.",
	},
	"creativity": {
		"Ideas flow through me freely and easily.",
		"I give myself permission to create without judgment.",
		"My imagination is a source of endless possibility.",
		"I see inspiration in everyday moments.",
		"I trust my creative instincts.",
		"Creating brings me joy and I make time for it.",
		"My unique voice deserves to be expressed.",
	},
	"peace": {
		"I am a beacon of peace and calm.",
		"I choose peace in every moment.",
		"I am grounded, centered, and at peace.",
		"I release all that no longer serves my highest good.",
		"I am in harmony with the rhythm of life.",
		"I trust in the unfolding of my journey.",
		"I am at peace with where I am right now.",
		"My mind is calm, my heart is open, my soul is at peace.",
	},
}
