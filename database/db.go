package database

import (
	"time"

	"globaled/models"

	"github.com/shopspring/decimal"
)

const (
	// DemoStudentID and DemoMentorID are the two users the session can switch between.
	DemoStudentID = 21
	DemoMentorID  = 6

	DemoPlanID = "plan-21-1"
)

// Fixtures is the data set every in-memory repository is seeded from on start.
type Fixtures struct {
	Mentors      []models.Mentor
	Reviews      map[int][]models.Review
	Students     []*models.Student
	Plans        []models.PaymentPlan
	StudentPosts []models.Post
	MentorPosts  []models.Post
	Chats        map[string][]models.ChatMessage
	// Conversations are the demo student's assistant chats, newest first.
	Conversations []models.Conversation
}

// LoadFixtures builds a fresh copy of the demo data.
func LoadFixtures() *Fixtures {
	return &Fixtures{
		Mentors:      mentors(),
		Reviews:      reviews(),
		Students:     students(),
		Plans:        plans(),
		StudentPosts: studentPosts(),
		MentorPosts:  mentorPosts(),
		Chats:        chats(),

		Conversations: conversations(),
	}
}

func mentors() []models.Mentor {
	return []models.Mentor{
		{
			BaseUser:    models.BaseUser{ID: 1, Name: "Zhang Wei (张伟)", Avatar: "https://picsum.photos/id/1027/200/200", Verified: models.VerificationStatus{Name: true, School: true}},
			University:  "Stanford University",
			Major:       "Computer Science",
			Category:    "Engineering",
			Region:      "USA",
			Price:       150,
			Experience:  "Tsinghua University alumnus, now at Stanford. Specialized in helping students from Chinese universities with their US CS grad school applications.",
			Degree:      "PhD Candidate",
			Rating:      4.9,
			ReviewCount: 2,
			Profile: models.MentorProfile{
				University: "Stanford University",
				Major:      "Computer Science",
				Degree:     "PhD Candidate",
				Background: "B.Eng from Tsinghua University. Research in distributed systems.",
				Services:   "SOP review, research interest matching, US MSCS/PhD application strategy.",
			},
		},
		{
			BaseUser:    models.BaseUser{ID: 2, Name: "Li Na (李娜)", Avatar: "https://picsum.photos/id/1011/200/200", Verified: models.VerificationStatus{Name: true, School: true}},
			University:  "London School of Economics",
			Major:       "Finance",
			Category:    "Business",
			Region:      "UK",
			Price:       180,
			Experience:  "Peking University alum, now at LSE. Expert in G5 university applications for finance and economics majors.",
			Degree:      "MSc",
			Rating:      4.8,
			ReviewCount: 1,
			Profile: models.MentorProfile{
				University: "London School of Economics",
				Major:      "Finance",
				Degree:     "MSc",
				Background: "B.A. in Economics from Peking University.",
				Services:   "G5 finance applications, CV tailoring, video interview preparation.",
			},
		},
		{
			BaseUser:    models.BaseUser{ID: 3, Name: "Wang Fang (王芳)", Avatar: "https://picsum.photos/id/1012/200/200", Verified: models.VerificationStatus{Name: true, School: false}},
			University:  "University of Toronto",
			Major:       "Data Science",
			Category:    "Engineering",
			Region:      "Canada",
			Price:       120,
			Experience:  "Fudan University graduate, currently studying Data Science in Toronto. Strong background in Canadian university applications.",
			Degree:      "MSc Candidate",
			Rating:      4.7,
			ReviewCount: 1,
			Profile: models.MentorProfile{
				University: "University of Toronto",
				Major:      "Data Science",
				Degree:     "MSc Candidate",
				Background: "B.Sc. in Statistics from Fudan University.",
				Services:   "Program selection in Canada, study permit guidance, SOP review.",
			},
		},
		{
			BaseUser:    models.BaseUser{ID: 4, Name: "Liu Yang (刘洋)", Avatar: "https://picsum.photos/id/1013/200/200", Verified: models.VerificationStatus{Name: true, School: true}},
			University:  "ETH Zurich",
			Major:       "Electrical Engineering",
			Category:    "Engineering",
			Region:      "Europe",
			Price:       160,
			Experience:  "SJTU alumnus, now at ETH Zurich. Focuses on helping engineering students apply to top European technical universities.",
			Degree:      "PhD",
			Rating:      4.6,
			ReviewCount: 0,
			Profile: models.MentorProfile{
				University: "ETH Zurich",
				Major:      "Electrical Engineering",
				Degree:     "PhD",
				Background: "B.Eng from Shanghai Jiao Tong University.",
				Services:   "European technical university applications, research proposal review.",
			},
		},
		{
			BaseUser:    models.BaseUser{ID: 5, Name: "Chen Jing (陈静)", Avatar: "https://picsum.photos/id/1015/200/200", Verified: models.VerificationStatus{Name: false, School: false}},
			University:  "National University of Singapore",
			Major:       "Business Analytics",
			Category:    "Business",
			Region:      "Asia",
			Price:       130,
			Experience:  "Graduated from Zhejiang University. Familiar with the application process for top business schools in Singapore and Hong Kong.",
			Degree:      "MSc",
			Rating:      4.5,
			ReviewCount: 0,
			Profile: models.MentorProfile{
				University: "National University of Singapore",
				Major:      "Business Analytics",
				Degree:     "MSc",
				Background: "B.Mgmt from Zhejiang University.",
				Services:   "Business school applications in Singapore and Hong Kong.",
			},
		},
		{
			BaseUser:    models.BaseUser{ID: DemoMentorID, Name: "Alex Chen", Avatar: "https://picsum.photos/id/1005/200/200", Verified: models.VerificationStatus{Name: true, School: true}},
			University:  "Carnegie Mellon University",
			Major:       "Machine Learning",
			Category:    "Engineering",
			Region:      "USA",
			Price:       200,
			Experience:  "Interned at Google and Microsoft Research. Helps students navigate top-tier CS programs.",
			Degree:      "PhD Candidate",
			Rating:      5.0,
			ReviewCount: 0,
			Profile: models.MentorProfile{
				University: "Carnegie Mellon University",
				Major:      "Machine Learning",
				Degree:     "PhD Candidate",
				Background: "B.Eng from Shanghai Jiao Tong University. Interned at Google and Microsoft Research. Passionate about helping students navigate the competitive landscape of top-tier CS programs.",
				Services:   "Statement of Purpose review, technical interview prep, research interest matching, and comprehensive application strategy.",
			},
		},
	}
}

func reviews() map[int][]models.Review {
	return map[int][]models.Review{
		1: {
			{ID: 1, ReviewerName: "Sophia Chen", Date: "2024-06-12", Rating: 5, Comment: "Helped me restructure my SOP completely. Got into two of my top choices."},
			{ID: 2, ReviewerName: "Kevin Zhou", Date: "2024-05-03", Rating: 5, Comment: "Very clear advice on choosing between research and professional programs."},
		},
		2: {
			{ID: 3, ReviewerName: "David Li", Date: "2024-04-20", Rating: 5, Comment: "The Kira Talent interview practice was exactly what I needed."},
		},
		3: {
			{ID: 4, ReviewerName: "Mia Sun", Date: "2024-03-15", Rating: 4, Comment: "Great overview of Canadian programs and study permits."},
		},
	}
}

func students() []*models.Student {
	return []*models.Student{
		{
			BaseUser: models.BaseUser{ID: DemoStudentID, Name: "Sophia Chen", Avatar: "https://picsum.photos/id/1016/200/200", Verified: models.VerificationStatus{Name: true, School: false}},
			Profile: models.StudentProfile{
				University: "Fudan University",
				Major:      "Software Engineering",
				Degree:     "B.Sc.",
				Background: "B.Sc. in Software Engineering from Fudan University, GPA 3.8/4.0.",
				Needs:      "Guidance on my Statement of Purpose for top-tier US MSCS programs.",
			},
		},
	}
}

func plans() []models.PaymentPlan {
	return []models.PaymentPlan{
		{
			ID:          DemoPlanID,
			StudentID:   DemoStudentID,
			MentorID:    1,
			StudentName: "Sophia Chen",
			MentorName:  "Zhang Wei (张伟)",
			Total:       decimal.NewFromInt(9000),
			Currency:    "CNY",
			Milestones: []models.Milestone{
				{ID: 1, Name: "Statement of Purpose Draft & Polish", Amount: decimal.NewFromInt(3000), DueDate: "2024-08-30", Status: models.MilestonePending},
				{ID: 2, Name: "Resume/CV Writing & Review", Amount: decimal.NewFromInt(3000), DueDate: "2024-09-30", Status: models.MilestoneLocked},
				{ID: 3, Name: "Online Application System Guidance", Amount: decimal.NewFromInt(3000), DueDate: "2024-10-30", Status: models.MilestoneLocked},
			},
		},
	}
}

func mentorPosts() []models.Post {
	return []models.Post{
		{ID: 1, UserID: DemoMentorID, Name: "Alex Chen", Avatar: "https://picsum.photos/id/1005/200/200", University: "Carnegie Mellon University", Major: "Machine Learning", Verified: models.VerificationStatus{Name: true, School: true}, Background: "B.Eng from SJTU. Interned at Google & MSRA.", Services: "SOP review, technical interview prep, research matching."},
		{ID: 2, UserID: 2, Name: "Emily White", Avatar: "https://picsum.photos/id/1028/200/200", University: "University of Oxford", Major: "Philosophy, Politics and Economics (PPE)", Verified: models.VerificationStatus{Name: true, School: true}, Background: "Graduated top of my class from Peking University. Received offers from both Oxford and Cambridge.", Services: "Personal statement crafting, interview coaching for Oxbridge."},
	}
}

func studentPosts() []models.Post {
	return []models.Post{
		{ID: 3, UserID: DemoStudentID, Name: "Sophia Chen", Avatar: "https://picsum.photos/id/1016/200/200", Target: "USA, Computer Science (MS)", Verified: models.VerificationStatus{Name: true, School: false}, Background: "B.Sc. in Software Engineering from Fudan University, GPA 3.8/4.0.", Needs: "Looking for guidance on my Statement of Purpose for top-tier US MSCS programs and advice on choosing between research-focused vs. professional master's."},
		{ID: 4, UserID: 22, Name: "David Li", Avatar: "https://picsum.photos/id/1018/200/200", Target: "UK, Finance (MSc)", Verified: models.VerificationStatus{Name: true, School: false}, Background: "B.A. in Economics from Renmin University, GPA 3.7/4.0, GMAT 740.", Needs: "Seeking a mentor with experience applying to LSE, Imperial, or similar top UK schools for finance. Need help tailoring my CV and preparing for Kira Talent video interviews."},
	}
}

func chats() map[string][]models.ChatMessage {
	return map[string][]models.ChatMessage{
		"1-21": {
			{SenderID: DemoStudentID, Text: "Hi Zhang Wei, I just sent over my first SOP draft.", Timestamp: "10:02"},
			{SenderID: 1, Text: "Thanks Sophia! I'll review it tonight and leave comments.", Timestamp: "10:15"},
		},
	}
}

func conversations() []models.Conversation {
	seeded := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	return []models.Conversation{
		{
			ID:    "1",
			Title: "UK vs. Canada for Data Science",
			Messages: []models.Message{
				{Role: models.MessageRoleUser, Text: "I'm trying to decide between the UK and Canada for my Master's in Data Science. I have a background in computer science from Fudan. What are the pros and cons?"},
				{Role: models.MessageRoleModel, Text: "Excellent question. Both countries offer fantastic programs. Let's break it down:\n\n" +
					"**United Kingdom (UK):**\n*   **Pros:** Shorter (usually 1-year) Master's programs, which means lower tuition and living costs overall. Home to world-class universities like Cambridge, Oxford, Imperial, and UCL.\n" +
					"*   **Cons:** The post-study work visa (Graduate Route) is typically for 2 years, which can be a tighter timeline for job searching compared to Canada.\n\n" +
					"**Canada:**\n*   **Pros:** Longer post-graduation work permits (PGWP), often up to 3 years, which can lead to a clearer path to permanent residency. Strong tech hubs in Toronto, Vancouver, and Montreal.\n" +
					"*   **Cons:** Master's programs are often longer (1.5-2 years), leading to higher overall costs.\n\n" +
					"For a Fudan CS graduate, you'd be a strong candidate for top programs in both countries. Have you considered which city or specific program type (e.g., research vs. professional) you prefer?"},
			},
			CreatedAt: seeded.Add(time.Hour),
			UpdatedAt: seeded.Add(time.Hour),
		},
		{
			ID:    "2",
			Title: "SOP Brainstorming",
			Messages: []models.Message{
				{Role: models.MessageRoleUser, Text: "I need to write my Statement of Purpose for a US MSCS program, but I'm stuck. I have good grades and a decent internship, but I don't know how to make my story compelling."},
				{Role: models.MessageRoleModel, Text: "That's a very common challenge. A great SOP isn't just a list of accomplishments; it's a narrative that connects your past experiences to your future goals. Let's start by brainstorming.\n\n" +
					"Could you tell me about a specific project from your internship or a university course that you found particularly challenging or exciting? What was the problem, and how did you contribute to solving it?"},
			},
			CreatedAt: seeded,
			UpdatedAt: seeded,
		},
	}
}
