package catalog

// Default returns the built-in menu catalog. Deployments override it with
// a catalog file managed through the admin page.
func Default() *Catalog {
	return &Catalog{
		Menus: []MenuItem{
			{Text: "아메리카노", Value: "americano", Category: "coffee"},
			{Text: "카페 라떼", Value: "caffe-latte", Category: "coffee"},
			{Text: "바닐라 빈 라떼", Value: "vanilla-bean-latte", Category: "coffee"},
			{Text: "아이스티", Value: "ice-tea", Category: "ade"},
			{Text: "밀크 티", Value: "milk-tea", Category: "ade"},
			{Text: "쇼콜라 라떼", Value: "chocolate-latte", Category: "ade"},
			{Text: "자몽에이드", Value: "grapefruit-ade", Category: "ade"},
			{Text: "레몬에이드", Value: "lemon-ade", Category: "ade"},
			{Text: "체리에이드", Value: "cherry-ade", Category: "ade"},
			{Text: "감잎차", Value: "persimmon-leaf-tea", Category: "tea"},
			{Text: "호박차", Value: "pumpkin-tea", Category: "tea"},
			{Text: "분다버그 진저비어", Value: "bundaberg-gingerbeer", Category: "bottle"},
			{Text: "분다버그 레몬", Value: "bundaberg-lemon", Category: "bottle"},
			{Text: "분다버그 자몽", Value: "bundaberg-grapefruit", Category: "bottle"},
			{Text: "골드메달 애플주스", Value: "apple-juice", Category: "bottle"},
			{Text: "에스프레소", Value: "espresso", Category: "coffee"},
			{Text: "드링킹요거트 라떼", Value: "drinking-yogurt", Category: "ade"},
			{Text: "레몬차", Value: "lemon-tea", Category: "ade"},
			{Text: "쑥차", Value: "mugwort-tea", Category: "tea"},
			{Text: "호지차", Value: "roasted-green-tea", Category: "tea"},
		},
		BeanOptions: []Option{
			{Text: "다크(기본)", Value: "dark"},
			{Text: "산미", Value: "acid"},
			{Text: "디카페인", Value: "decaf"},
		},
		TemperatureOptions: []Option{
			{Text: "HOT", Value: "hot"},
			{Text: "ICE", Value: "ice"},
		},
		ExtraOptions: []Option{
			{Text: "샷 추가", Value: "extra_shot"},
			{Text: "연하게", Value: "light"},
			{Text: "덜 달게", Value: "less_sweet"},
			{Text: "얼음 적게", Value: "less_ice"},
		},
		TemperatureLabels: map[string]string{
			"hot": "따뜻한",
			"ice": "아이스",
		},
		CategoriesNeedingBeanOption: []string{"coffee"},
		DefaultBeanOption:           "dark",
		Language:                    "ko",
	}
}
