package main

// Page copy. The skills strip is configured separately (internal/skills).

var AboutMe = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.
When I'm not coding, you'll usually find me training Muay Thai, shooting pool with friends,
or chasing down a new challenge outside the screen.`

// SkillCategory is one card of the skills grid.
type SkillCategory struct {
	Title string
	Items []string
	Color string
}

var SkillCategories = []SkillCategory{
	{Title: "Frontend", Items: []string{"React", "TypeScript", "Next.js", "Tailwind"}, Color: "pink"},
	{Title: "Backend", Items: []string{"Node.js", "Python", "MongoDB", "SQL"}, Color: "yellow"},
	{Title: "Tools", Items: []string{"Git", "Docker", "AWS", "Jest"}, Color: "green"},
	{Title: "Other", Items: []string{"Agile", "CI/CD", "Problem Solving", "Team Work"}, Color: "blue"},
}

type Project struct {
	Title        string
	Description  string
	Technologies []string
	GitHub       string
	Demo         string
	Image        string
}

var Projects = []Project{
	{
		Title:        "Terminal Mail",
		Description:  "A terminal-based email client with fuzzy finding, built on the Charmbracelet TUI framework and go-imap.",
		Technologies: []string{"Go", "Bubble Tea", "IMAP"},
		GitHub:       "https://github.com/Zachkp",
		Image:        "images/projects/mail.png",
	},
	{
		Title:        "Terminal Music",
		Description:  "A terminal music streaming app that drives yt-dlp and mpv for YouTube Music playback from the command line.",
		Technologies: []string{"Go", "yt-dlp", "mpv"},
		GitHub:       "https://github.com/Zachkp",
		Image:        "images/projects/music.png",
	},
	{
		Title:        "Game Recommender",
		Description:  "TF-IDF vectors and cosine similarity recommend games from their descriptions, with interactive charts and filtering by reviews and ratings.",
		Technologies: []string{"Python", "scikit-learn", "Plotly"},
		GitHub:       "https://github.com/Zachkp",
		Image:        "images/projects/games.png",
	},
	{
		Title:        "This Site",
		Description:  "Go and Gin with HTMX fragments. The skills strip is simulated server side and streamed over a WebSocket.",
		Technologies: []string{"Go", "Gin", "HTMX", "WebSocket"},
		GitHub:       "https://github.com/Zachkp/zach-dev",
		Image:        "images/projects/site.png",
	},
}

// TimelineItem is one entry of the work or education timeline.
type TimelineItem struct {
	Title        string
	Org          string
	StartDate    string
	EndDate      string
	LogoPath     string
	BulletPoints []string
}

var Work = []TimelineItem{
	{
		Title:     "Presentation Expert",
		Org:       "Target",
		StartDate: "Aug 2023",
		EndDate:   "Present",
		LogoPath:  "images/TargetLogo.jpg",
		BulletPoints: []string{
			"Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities",
			"Boosted operational efficiency by managing backroom inventory processes and streamlining communication between floor and logistics teams",
			"Enhanced pricing and signage accuracy across departments by standardizing daily checks and collaborating cross-functionally",
		},
	},
	{
		Title:     "Manager",
		Org:       "Jasons Catered Events",
		StartDate: "Aug 2016",
		EndDate:   "Present",
		LogoPath:  "images/jasonsCateringLogo.png",
		BulletPoints: []string{
			"Improved client satisfaction by coordinating customized menus and ensuring all dietary requirements were accurately met",
			"Supported event technology by troubleshooting AV equipment and managing digital order tracking systems",
			"Maintained supply inventory and coordinated timely delivery between venues",
		},
	},
}

var Education = []TimelineItem{
	{
		Title:     "Bachelor of Computer Science",
		Org:       "Western Governors University",
		StartDate: "Sept 2019",
		EndDate:   "May 2023",
		LogoPath:  "images/WGU-logo.png",
		BulletPoints: []string{
			"Graduated Magna Cum Laude with 3.8 GPA",
			"Relevant coursework: Data Structures, Algorithms, Web Development",
			"Senior project: Machine Learning recommendation system",
		},
	},
	{
		Title:     "Project Management",
		Org:       "Comptia",
		StartDate: "July 2022",
		EndDate:   "Present",
		LogoPath:  "images/comptiaCert.png",
		BulletPoints: []string{
			"Certified in agile project management methodology",
			"Verification code: SRRRPGBSWBRQCCDJ",
		},
	},
}
