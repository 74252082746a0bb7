package models

// SeedAdminID is the bootstrap administrator account. It cannot be deleted:
// losing it on a fresh install would lock the platform out of its own admin
// surface, since there is no server-side recovery path.
const SeedAdminID = "admin-1"

// DefaultLessonImage is applied when a new lesson is created without a
// cover image.
const DefaultLessonImage = "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?auto=format&fit=crop&q=80&w=800"

// SeedUsers returns the bootstrap identities used when no user collection
// has been persisted yet. Password digests are SHA-256 hex:
// "admin" for the administrator, "123" for the demo trainee.
func SeedUsers() []User {
	return []User{
		{
			ID:             SeedAdminID,
			Name:           "عمر أيت لوتو",
			Email:          "omar.aitloutou@ista.ma",
			PasswordDigest: "8c6976e5b5410415bde908bd4dee15dfb167a9c873fc4bb8a81f6f2ab448a918",
			Role:           RoleAdmin,
		},
		{
			ID:             "trainee-1",
			Name:           "أحمد طالب",
			Email:          "student@ista.ma",
			PasswordDigest: "a665a45920422f9d417e4867efdc4fb8a04a1f3fff1fa07e998e86f7f7a27ae3",
			Role:           RoleTrainee,
			Specialization: "تطوير رقمي",
		},
	}
}

// SeedLessons returns the bootstrap course content used when no lesson
// collection has been persisted yet.
func SeedLessons() []Lesson {
	return []Lesson{
		{
			ID:     "1",
			Title:  "تقنيات التواصل الشفهي",
			Module: "M01 - التواصل",
			Image:  "https://images.unsplash.com/photo-1521737604893-d14cc237f11d?auto=format&fit=crop&q=80&w=800",
			Resources: []Resource{
				{
					ID:          "r1",
					Title:       "مقدمة في التواصل",
					Description: "تعريفات أساسية وسيناريوهات للتواصل الفعال.",
					Type:        ResourceText,
					Content:     "التواصل هو عملية تبادل المعلومات والأفكار والمشاعر بين شخصين أو أكثر. يعتبر التواصل الفعال مهارة أساسية في الحياة المهنية والشخصية.",
					CreatedAt:   "2023-10-01",
				},
				{
					ID:          "r2",
					Title:       "الإنصات الفعال",
					Description: "ركائز الاستماع النشط وكيفية تطبيقه.",
					Type:        ResourceSkill,
					Content:     "الإنصات الفعال يتطلب التركيز الكامل وفهم لغة الجسد، وليس مجرد الاستماع للكلمات. يساعد على بناء الثقة وتقليل سوء الفهم.",
					CreatedAt:   "2023-10-02",
				},
			},
		},
		{
			ID:     "2",
			Title:  "التواصل الكتابي المهني",
			Module: "M02 - الكتابة المهنية",
			Image:  "https://images.unsplash.com/photo-1455390582262-044cdead277a?auto=format&fit=crop&q=80&w=800",
			Resources: []Resource{
				{
					ID:          "r3",
					Title:       "كتابة السيرة الذاتية",
					Description: "دليل شامل لإنشاء سيرة ذاتية مؤثرة.",
					Type:        ResourcePresentation,
					Content:     "عرض تقديمي يوضح الخطوات العملية لكتابة سيرة ذاتية احترافية تجذب انتباه أصحاب العمل.",
					URL:         "#",
					CreatedAt:   "2023-10-05",
				},
			},
		},
		{
			ID:        "3",
			Title:     "مهارات العرض والتقديم",
			Module:    "M03 - الإلقاء",
			Image:     "https://images.unsplash.com/photo-1544531586-fde5298cdd40?auto=format&fit=crop&q=80&w=800",
			Resources: []Resource{},
		},
	}
}
