package i18n

// Встроенные словари. Ключи верхнего уровня сгруппированы по экранам.
// Амхарский и оромо намеренно неполные: недостающие ключи
// закрываются английским словарем через fallback в Bundle.T.

var dictEnglish = Dictionary{
	"nav": Dictionary{
		"home":     "Home",
		"explore":  "Explore",
		"bookings": "My Bookings",
		"login":    "Log in",
		"logout":   "Log out",
		"register": "Sign up",
	},
	"explore": Dictionary{
		"title":      "Explore cultural experiences",
		"featured":   "Featured experiences",
		"no_results": "No experiences match your filters",
		"per_person": "per person",
	},
	"booking": Dictionary{
		"status": Dictionary{
			"pending":   "Awaiting confirmation",
			"confirmed": "Confirmed",
			"completed": "Completed",
			"cancelled": "Cancelled",
			"rejected":  "Rejected",
		},
		"guests": "Guests",
		"total":  "Total",
	},
	"payment": Dictionary{
		"status": Dictionary{
			"pending":    "Pending",
			"processing": "Processing",
			"completed":  "Paid",
			"failed":     "Failed",
			"cancelled":  "Cancelled",
			"refunded":   "Refunded",
		},
	},
	"errors": Dictionary{
		"not_found": "Not found",
		"internal":  "Something went wrong. Please try again.",
	},
}

var dictAmharic = Dictionary{
	"nav": Dictionary{
		"home":     "መነሻ",
		"explore":  "አስስ",
		"bookings": "ቦታ ማስያዣዎቼ",
		"logout":   "ውጣ",
		"register": "ተመዝገብ",
		// "login" intentionally absent: exercised by the fallback path
	},
	"explore": Dictionary{
		"title":      "የባህል ተሞክሮዎችን ያስሱ",
		"featured":   "ተመራጭ ተሞክሮዎች",
		"per_person": "ለአንድ ሰው",
	},
	"booking": Dictionary{
		"status": Dictionary{
			"pending":   "ማረጋገጫ በመጠበቅ ላይ",
			"confirmed": "ተረጋግጧል",
			"completed": "ተጠናቋል",
			"cancelled": "ተሰርዟል",
			"rejected":  "ውድቅ ተደርጓል",
		},
		"guests": "እንግዶች",
		"total":  "ጠቅላላ",
	},
}

var dictOromo = Dictionary{
	"nav": Dictionary{
		"home":     "Mana",
		"explore":  "Sakatta'i",
		"bookings": "Qabannoo koo",
		"login":    "Seeni",
		"register": "Galmaa'i",
	},
	"explore": Dictionary{
		"title":      "Muuxannoo aadaa sakatta'i",
		"per_person": "nama tokkoof",
	},
}
