package catalog

import "github.com/KasenaM/kisite-canines/models"

// Package describes one bookable service package. Prices are kept in their
// display form ("KES 12,000", "KES 1,500/night") and parsed on demand.
type Package struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Details     string   `json:"details,omitempty"`
	Price       string   `json:"price"`
	Note        string   `json:"note,omitempty"`
	Features    []string `json:"features,omitempty"`
}

var servicePackages = map[models.ServiceType][]Package{
	models.ServiceTraining: {
		{
			Name:        "Puppy Basics",
			Description: "Housebreaking, crate training, name response, early socialization.",
			Details:     "2 Weeks – KES 6,000",
			Price:       "KES 6,000",
			Note:        "Ideal for dogs under 5 months",
		},
		{
			Name:        "Obedience Training",
			Description: "Commands like sit, stay, recall, leash walking, and calm behavior.",
			Details:     "4 Weeks – KES 12,000",
			Price:       "KES 12,000",
			Note:        "Recommended for all dogs",
		},
		{
			Name:        "Behavioral Correction",
			Description: "Solutions for barking, aggression, anxiety, and destructive habits.",
			Details:     "4–6 Weeks – from KES 15,000",
			Price:       "KES 15,000",
			Note:        "Custom plans per case",
		},
		{
			Name:        "Advanced Training",
			Description: "Off-leash recall, distance commands, and complex tasks or tricks.",
			Details:     "6+ Weeks – KES 20,000+",
			Price:       "KES 20,000",
			Note:        "For advanced learners",
		},
		{
			Name:        "Service Dog Prep",
			Description: "Foundational tasks and focus training for working or therapy dogs.",
			Details:     "Custom Plan – Inquire",
			Price:       "KES 0",
			Note:        "Assessment required",
		},
	},
	models.ServiceGrooming: {
		{
			Name:        "Basic Wash",
			Description: "Gentle bath, blow-dry, ear wipe, and paw wash — perfect for quick cleanups.",
			Details:     "Duration: 30 mins",
			Price:       "KES 1,500",
		},
		{
			Name:        "Full Groom",
			Description: "Bath, brushing, coat trimming or haircut, nail clipping, and ear cleaning.",
			Details:     "Duration: 1.5 hours",
			Price:       "KES 3,500",
		},
		{
			Name:        "Spa Package",
			Description: "Full groom + coat conditioning, paw balm massage, fresh breath spray.",
			Details:     "Duration: 2 hours",
			Price:       "KES 5,000",
		},
		{
			Name:        "De-shedding Treatment",
			Description: "Specialized tools to reduce loose hair & promote healthy coat.",
			Details:     "Duration: 1–1.5 hours",
			Price:       "KES 4,000",
		},
		{
			Name:        "Flea & Tick Treatment",
			Description: "Medicated bath + manual removal to keep dog itch-free & safe.",
			Details:     "Duration: 1 hour",
			Price:       "KES 3,000",
		},
		{
			Name:        "Breed-Specific Styling",
			Description: "Tailored cuts for specific breeds — show-level finish every time.",
			Details:     "Duration: 2+ hours",
			Price:       "From KES 6,000",
		},
	},
	models.ServiceBoarding: {
		{
			Name:        "Standard Suite",
			Description: "Cozy crate with soft bedding, designed for comfort and safety.",
			Features:    []string{"2 play sessions/day", "Clean crate & soft mat"},
			Price:       "KES 1,500/night",
		},
		{
			Name:        "Deluxe Suite",
			Description: "Larger space with plush bedding and personal attention.",
			Features:    []string{"Daily walks", "Extra playtime", "Private resting area"},
			Price:       "KES 3,000/night",
		},
		{
			Name:        "Private Room",
			Description: "Solo lodging with a home-like setup — perfect for anxious or senior dogs.",
			Features:    []string{"One-on-one care", "Routine customization", "Quiet environment"},
			Price:       "KES 4,500/night",
		},
		{
			Name:        "Outdoor Cabin",
			Description: "Shaded kennel with nature access for outdoor-loving dogs.",
			Features:    []string{"Outdoor naps", "Secure fencing", "Morning hikes"},
			Price:       "KES 3,800/night",
		},
		{
			Name:        "Luxury Suite",
			Description: "Premium suite with webcam access, orthopedic bedding, aromatherapy.",
			Features:    []string{"Webcam", "Soothing music", "Night light"},
			Price:       "KES 6,000/night",
		},
		{
			Name:        "Puppy Play Den",
			Description: "Safe padded play area designed specifically for puppies.",
			Features:    []string{"Puppy-proofed space", "Gentle play", "Hourly check-ins"},
			Price:       "KES 3,200/night",
		},
	},
}

// Packages returns the ordered package list for a service type.
func Packages(service models.ServiceType) []Package {
	return servicePackages[service]
}

// Find looks up a package by service type and package name.
func Find(service models.ServiceType, name string) (Package, bool) {
	for _, p := range servicePackages[service] {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}
