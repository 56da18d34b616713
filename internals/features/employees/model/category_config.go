// file: internals/features/employees/model/category_config.go
package model

// Category: kunci kategori pegawai (dipakai di URL /api/employees/:category).
type Category string

const (
	CategoryAdministration                 Category = "administration"
	CategoryGovernmentTeacher              Category = "governmentTeacher"
	CategoryGuestTeacher                   Category = "guestTeacher"
	CategoryLibrarian                      Category = "librarian"
	CategoryPhysicalEducationTeacher       Category = "physicalEducationTeacher"
	CategoryGovernment3rdClass             Category = "government3rdClass"
	CategoryGovernment4thClass             Category = "government4thClass"
	CategoryNonGovernment3rdClass          Category = "nonGovernment3rdClass"
	CategoryNonGovernment4thClass          Category = "nonGovernment4thClass"
	CategoryNonGovernmentDepartmentalClerk Category = "nonGovernmentDepartmentalClerk"
)

// Field: nama field di body request (snake_case).
type Field string

const (
	FieldName        Field = "name"
	FieldDesignation Field = "designation"
	FieldDepartment  Field = "department"
	FieldIDNumber    Field = "id_number"
	FieldBCSBatch    Field = "bcs_batch"
	FieldNIDNumber   Field = "nid_number"
	FieldETIN        Field = "e_tin"
)

// AllFields dalam urutan tampil.
var AllFields = []Field{
	FieldName,
	FieldDesignation,
	FieldDepartment,
	FieldIDNumber,
	FieldBCSBatch,
	FieldNIDNumber,
	FieldETIN,
}

// Column: nama kolom tabel employees untuk sebuah field.
func (f Field) Column() string {
	switch f {
	case FieldName:
		return "employee_name"
	case FieldDesignation:
		return "employee_designation"
	case FieldDepartment:
		return "employee_department"
	case FieldIDNumber:
		return "employee_id_number"
	case FieldBCSBatch:
		return "employee_bcs_batch"
	case FieldNIDNumber:
		return "employee_nid_number"
	case FieldETIN:
		return "employee_e_tin"
	}
	return ""
}

// FieldDescriptor: satu kolom form per kategori. Options hanya petunjuk untuk UI.
type FieldDescriptor struct {
	Name     Field    `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"` // text | select
	Required bool     `json:"required"`
	Unique   bool     `json:"unique"`
	Options  []string `json:"options,omitempty"`
}

type CategoryConfig struct {
	Key              Category          `json:"key"`
	Label            string            `json:"label"`
	Fields           []FieldDescriptor `json:"fields"`
	DesignationOrder []string          `json:"designation_order,omitempty"`
}

// Field mencari descriptor; ok=false kalau field tidak dipakai kategori ini.
func (c CategoryConfig) Field(name Field) (FieldDescriptor, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// DesignationRank: posisi jabatan di DesignationOrder, -1 kalau tidak terdaftar.
func (c CategoryConfig) DesignationRank(designation string) int {
	for i, d := range c.DesignationOrder {
		if d == designation {
			return i
		}
	}
	return -1
}

var Departments = []string{
	"Accounting",
	"Bangla",
	"Botany",
	"Chemistry",
	"Economics",
	"English",
	"Finance & Banking",
	"History",
	"Islamic History & Culture",
	"Arabic & Islamic Studies",
	"Management",
	"Marketing",
	"Mathematics",
	"Philosophy",
	"Physics",
	"Political Science",
	"Social Work",
	"Sociology",
	"Statistics",
	"Zoology",
}

var GovernmentDesignations = []string{
	"Principal",
	"Vice Principal",
	"Professor",
	"Associate Professor",
	"Assistant Professor",
	"Lecture",
	"Physical Teacher",
	"Librarian",
	"Demonstrator",
	"Head Assistant",
	"Accountant",
	"Assistant Accountant",
	"Store Keeper",
	"Cashier",
	"Office Assistant Cum-Computer Operator",
	"Book Sorter",
	"Skill Bearer",
	"Office Assistant",
}

/* ---------- descriptor builders ---------- */

func nameField() FieldDescriptor {
	return FieldDescriptor{Name: FieldName, Label: "Name", Type: "text", Required: true}
}

func designationField(options ...string) FieldDescriptor {
	f := FieldDescriptor{Name: FieldDesignation, Label: "Designation", Type: "text", Required: true}
	if len(options) > 0 {
		f.Type = "select"
		f.Options = options
	}
	return f
}

func departmentField(required bool) FieldDescriptor {
	return FieldDescriptor{Name: FieldDepartment, Label: "Department", Type: "select", Required: required, Options: Departments}
}

func idNumberField(required bool) FieldDescriptor {
	return FieldDescriptor{Name: FieldIDNumber, Label: "ID Number", Type: "text", Required: required, Unique: true}
}

func bcsBatchField() FieldDescriptor {
	return FieldDescriptor{Name: FieldBCSBatch, Label: "BCS Batch", Type: "text"}
}

// NID dan E-TIN wajib + unik di semua kategori.
func identityFields() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: FieldNIDNumber, Label: "NID Number", Type: "text", Required: true, Unique: true},
		{Name: FieldETIN, Label: "E-TIN", Type: "text", Required: true, Unique: true},
	}
}

func fields(fs ...FieldDescriptor) []FieldDescriptor {
	return append(fs, identityFields()...)
}

var (
	teacherRanks   = []string{"Professor", "Associate Professor", "Assistant Professor", "Lecture", "Demonstrator"}
	thirdClassGov  = []string{"Head Assistant", "Accountant", "Assistant Accountant", "Store Keeper", "Cashier", "Office Assistant Cum-Computer Operator"}
	fourthClassGov = []string{"Book Sorter", "Skill Bearer", "Office Assistant"}
)

var categoryOrder = []Category{
	CategoryAdministration,
	CategoryGovernmentTeacher,
	CategoryGuestTeacher,
	CategoryLibrarian,
	CategoryPhysicalEducationTeacher,
	CategoryGovernment3rdClass,
	CategoryGovernment4thClass,
	CategoryNonGovernment3rdClass,
	CategoryNonGovernment4thClass,
	CategoryNonGovernmentDepartmentalClerk,
}

var categoryConfigs = map[Category]CategoryConfig{
	CategoryAdministration: {
		Label:            "Administration",
		Fields:           fields(nameField(), designationField("Principal", "Vice Principal"), idNumberField(true), bcsBatchField()),
		DesignationOrder: []string{"Principal", "Vice Principal"},
	},
	CategoryGovernmentTeacher: {
		Label:            "Government Teacher",
		Fields:           fields(nameField(), designationField(teacherRanks...), departmentField(true), idNumberField(true), bcsBatchField()),
		DesignationOrder: teacherRanks,
	},
	CategoryGuestTeacher: {
		Label:  "Guest Teacher",
		Fields: fields(nameField(), designationField(), departmentField(true), idNumberField(true)),
	},
	CategoryLibrarian: {
		Label:  "Librarian",
		Fields: fields(nameField(), designationField("Librarian"), idNumberField(true), bcsBatchField()),
	},
	CategoryPhysicalEducationTeacher: {
		Label:  "Physical Education Teacher",
		Fields: fields(nameField(), designationField("Physical Teacher"), idNumberField(true), bcsBatchField()),
	},
	CategoryGovernment3rdClass: {
		Label:            "Government 3rd Class Employee",
		Fields:           fields(nameField(), designationField(thirdClassGov...), idNumberField(true)),
		DesignationOrder: thirdClassGov,
	},
	CategoryGovernment4thClass: {
		Label:            "Government 4th Class Employee",
		Fields:           fields(nameField(), designationField(fourthClassGov...), idNumberField(true)),
		DesignationOrder: fourthClassGov,
	},
	CategoryNonGovernment3rdClass: {
		Label:  "Non-Government 3rd Class Employee",
		Fields: fields(nameField(), designationField(), idNumberField(false)),
	},
	CategoryNonGovernment4thClass: {
		Label:  "Non-Government 4th Class Employee",
		Fields: fields(nameField(), designationField(), idNumberField(false)),
	},
	CategoryNonGovernmentDepartmentalClerk: {
		Label:  "Non-Government Departmental Clerk",
		Fields: fields(nameField(), designationField(), departmentField(true), idNumberField(false)),
	},
}

// LookupCategory mengembalikan konfigurasi kategori (dengan Key terisi).
func LookupCategory(key string) (CategoryConfig, bool) {
	cfg, ok := categoryConfigs[Category(key)]
	if !ok {
		return CategoryConfig{}, false
	}
	cfg.Key = Category(key)
	return cfg, true
}

// Categories: semua kategori dalam urutan menu.
func Categories() []CategoryConfig {
	out := make([]CategoryConfig, 0, len(categoryOrder))
	for _, k := range categoryOrder {
		cfg, _ := LookupCategory(string(k))
		out = append(out, cfg)
	}
	return out
}
