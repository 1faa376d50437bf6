package loadr

import "strconv"

// Shared lists for synthetic data generation.

// Specializations is the clinical specialization catalog. The generator takes
// entries from the front, so the first nine match the classic clinic set.
var Specializations = []string{
	"Терапевт",
	"Хирург",
	"Педиатр",
	"Гинеколог",
	"Психиатр-нарколог",
	"Невролог",
	"Офтальмолог",
	"Окулист",
	"Оториноларинголог",
	"Кардиолог",
	"Эндокринолог",
	"Дерматолог",
}

// PlaceName returns the display name of the n-th consulting room.
func PlaceName(n int) string {
	return "Поликлиника №1, Кабинет №" + strconv.Itoa(n)
}

var DrugNames = []string{
	"Atorvastatin", "Levothyroxine", "Lisinopril", "Metformin", "Amlodipine",
	"Metoprolol", "Omeprazole", "Simvastatin", "Losartan", "Albuterol",
	"Gabapentin", "Hydrochlorothiazide", "Sertraline", "Furosemide", "Fluticasone",
	"Acetaminophen", "Prednisone", "Tramadol", "Amoxicillin", "Pantoprazole",
	"Citalopram", "Cetirizine", "Trazodone", "Clopidogrel", "Atenolol",
	"Rosuvastatin", "Escitalopram", "Bupropion", "Duloxetine", "Warfarin",
	"Insulin Glargine", "Glimepiride", "Sitagliptin", "Spironolactone", "Allopurinol",
	"Amiodarone", "Doxycycline", "Cefuroxime", "Levofloxacin", "Ketoconazole",
	"Azithromycin", "Ceftriaxone", "Fluconazole", "Metronidazole", "Budesonide",
	"Loratadine", "Meloxicam", "Naproxen", "Diclofenac", "Ondansetron",
	"Propranolol", "Acyclovir", "Valacyclovir", "Carvedilol", "Enalapril",
	"Digoxin", "Lorazepam", "Diazepam", "Hydralazine", "Tamsulosin",
}
