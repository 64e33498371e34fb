package content

import "time"

func seedBootcamps(now time.Time) []Bootcamp {
	return []Bootcamp{
		{
			UID: "ai-explorer",
			Title: LocalizedText{
				EN: "AI Explorer Bootcamp",
				ZH: "AI 探索训练营",
			},
			Tagline: LocalizedText{
				EN: "Hands-on introduction to building with large language models",
				ZH: "动手实践大语言模型应用开发",
			},
			PriceInCents:    129900,
			Currency:        "usd",
			GoodsResourceID: "p_ai_explorer",
			CreatedAt:       now,
		},
		{
			UID: "maker-lab",
			Title: LocalizedText{
				EN: "Maker Lab Bootcamp",
				ZH: "创客实验营",
			},
			Tagline: LocalizedText{
				EN: "From idea to working prototype in four weeks",
				ZH: "四周内从想法到可用原型",
			},
			PriceInCents:    99900,
			Currency:        "usd",
			GoodsResourceID: "p_maker_lab",
			CreatedAt:       now,
		},
	}
}

func seedTrainings(now time.Time) []Training {
	return []Training{
		{
			UID: "ai-foundations",
			Title: LocalizedText{
				EN: "AI Foundations Training",
				ZH: "AI 基础课程",
			},
			Description: LocalizedText{
				EN: "Self-paced curriculum covering the fundamentals of modern AI systems",
				ZH: "自学课程，涵盖现代人工智能系统基础",
			},
			PriceInCents:    49900,
			Currency:        "usd",
			GoodsResourceID: "p_ai_foundations",
			CreatedAt:       now,
		},
	}
}
