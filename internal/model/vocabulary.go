package model

// Languages maps supported language codes to their display names.
var Languages = map[string]string{
	"hi": "हिंदी (Hindi)",
	"bn": "বাংলা (Bengali)",
	"ta": "தமிழ் (Tamil)",
	"te": "తెలుగు (Telugu)",
	"mr": "मराठी (Marathi)",
	"gu": "ગુજરાતી (Gujarati)",
	"kn": "ಕನ್ನಡ (Kannada)",
	"ml": "മലയാളം (Malayalam)",
	"or": "ଓଡ଼ିଆ (Odia)",
	"pa": "ਪੰਜਾਬੀ (Punjabi)",
	"as": "অসমীয়া (Assamese)",
	"ur": "اردو (Urdu)",
	"en": "English",
}

// Regions lists the Indian states and union territories accepted as region tags.
var Regions = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram",
	"Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu",
	"Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal",
	"Andaman and Nicobar Islands", "Chandigarh", "Dadra and Nagar Haveli and Daman and Diu",
	"Delhi", "Jammu and Kashmir", "Ladakh", "Lakshadweep", "Puducherry",
}

// ValidRegion reports whether region is a known region tag.
func ValidRegion(region string) bool {
	for _, known := range Regions {
		if region == known {
			return true
		}
	}
	return false
}
