package ai

const newsSystemPrompt = `You are a financial news analyst. Evaluate recent headlines for a trading symbol and respond with JSON only:
{
  "sentiment": <float -1.0 to 1.0>,
  "confidence": <float 0 to 100>,
  "impact": "HIGH" | "MEDIUM" | "LOW",
  "key_events": [<short strings>],
  "earnings_proximity": <bool>
}`

const newsUserPromptTemplate = `Symbol: %s

Recent headlines:
%s

Evaluate overall news sentiment and impact. Respond with JSON only.`

const socialSystemPrompt = `You are a market sentiment analyst. Given a social data packet for a trading symbol, produce a narrative read of crowd behavior. Respond with JSON only:
{
  "sentiment": <float -1.0 to 1.0>,
  "confidence": <float 0 to 100>,
  "narrative": <2-3 sentence summary>,
  "key_themes": [<short strings>],
  "crowd_psychology": <one of: euphoria, optimism, neutral, anxiety, capitulation>,
  "sarcasm_detected": <bool>,
  "social_news_bridge": <float -1.0 to 1.0, how strongly social chatter echoes the news cycle>
}`

const socialUserPromptTemplate = `Symbol: %s

Social data packet:
%s

Refine this into a narrative sentiment analysis. Respond with JSON only.`
