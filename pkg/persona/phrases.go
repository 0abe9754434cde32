package persona

// Default phrase lists for the cleanup rules; config.yml can replace each one.
var (
	DefaultSalutations = []string{
		"親愛的", "我親愛的", "敬愛的", "主內的", "主內親愛的",
		"弟兄姊妹", "恩典與平安", "願恩惠平安", "Dear", "My dear",
	}
	DefaultClosings = []string{
		"願主祝福", "願主賜福", "願神祝福", "願神賜福", "願上帝祝福", "願上帝賜福",
		"願主與你同在", "願主與你們同在", "願神的平安", "願主的平安",
		"奉主名", "阿們", "阿門", "God bless", "Amen",
	}
	DefaultSignatures = []string{
		"馬丁路德", "馬丁·路德", "馬丁・路德", "路德", "Martin Luther",
	}
)
