package model

import (
	"strings"
	"time"

	"github.com/mmeshcher/rescue-animals-system/internal/validation"
)

// AnimalType задаёт вид животного-спасателя и служит дискриминатором записи.
type AnimalType string

const (
	AnimalTypeDog    AnimalType = "Dog"
	AnimalTypeMonkey AnimalType = "Monkey"
)

// TrainingStatuses перечисляет принятые статусы подготовки. Список
// предназначен для слоя представления; в самой записи статус хранится
// как нормализованная строка.
var TrainingStatuses = []string{"Not Trained", "In Training", "Fully Trained"}

// MonkeySpecies перечисляет виды обезьян, предлагаемые слоем представления.
var MonkeySpecies = []string{"Capuchin", "Guenon", "Macaque", "Marmoset", "Squirrel Monkey", "Tamarin"}

// Animal представляет запись животного-спасателя. Значение неизменяемо:
// оно создаётся только конструкторами NewDog/NewMonkey либо фабрикой
// AnimalFromRecord, каждая из которых валидирует все поля.
type Animal struct {
	Type AnimalType

	Name               string
	Gender             string
	Age                int
	Weight             float64
	AcquisitionDate    string
	AcquisitionCountry string
	TrainingStatus     string
	Reserved           bool
	InServiceCountry   string

	// Поля конкретного вида: Breed заполнено только для Dog,
	// Species и морфометрия — только для Monkey.
	Breed      string
	Species    string
	TailLength *float64
	Height     *float64
	BodyLength *float64
}

// BaseParams содержит общие поля для создания записи любого вида.
type BaseParams struct {
	Name               string
	Gender             string
	Age                int
	Weight             float64
	AcquisitionCountry string
	TrainingStatus     string
	Reserved           bool
	InServiceCountry   string
}

// DogParams содержит поля для создания записи собаки.
type DogParams struct {
	BaseParams
	Breed string
}

// MonkeyParams содержит поля для создания записи обезьяны.
// Морфометрические поля необязательны.
type MonkeyParams struct {
	BaseParams
	Species    string
	TailLength *float64
	Height     *float64
	BodyLength *float64
}

func newBase(t AnimalType, p BaseParams) (Animal, error) {
	name, err := validation.NonEmpty(p.Name, "name")
	if err != nil {
		return Animal{}, err
	}
	gender, err := validation.NonEmpty(p.Gender, "gender")
	if err != nil {
		return Animal{}, err
	}
	age, err := validation.NonNegativeInt(p.Age, "age")
	if err != nil {
		return Animal{}, err
	}
	weight, err := validation.PositiveFinite(p.Weight, "weight")
	if err != nil {
		return Animal{}, err
	}
	acquisitionCountry, err := validation.NonEmpty(p.AcquisitionCountry, "acquisition_country")
	if err != nil {
		return Animal{}, err
	}
	trainingStatus, err := validation.NonEmpty(p.TrainingStatus, "training_status")
	if err != nil {
		return Animal{}, err
	}
	inServiceCountry, err := validation.NonEmpty(p.InServiceCountry, "in_service_country")
	if err != nil {
		return Animal{}, err
	}

	return Animal{
		Type:               t,
		Name:               name,
		Gender:             gender,
		Age:                age,
		Weight:             weight,
		AcquisitionDate:    time.Now().Format(time.DateOnly),
		AcquisitionCountry: acquisitionCountry,
		TrainingStatus:     trainingStatus,
		Reserved:           p.Reserved,
		InServiceCountry:   inServiceCountry,
	}, nil
}

// NewDog создаёт и валидирует запись собаки.
func NewDog(p DogParams) (Animal, error) {
	a, err := newBase(AnimalTypeDog, p.BaseParams)
	if err != nil {
		return Animal{}, err
	}

	breed, err := validation.NonEmpty(p.Breed, "breed")
	if err != nil {
		return Animal{}, err
	}
	a.Breed = breed

	return a, nil
}

// NewMonkey создаёт и валидирует запись обезьяны.
func NewMonkey(p MonkeyParams) (Animal, error) {
	a, err := newBase(AnimalTypeMonkey, p.BaseParams)
	if err != nil {
		return Animal{}, err
	}

	species, err := validation.NonEmpty(p.Species, "species")
	if err != nil {
		return Animal{}, err
	}
	tailLength, err := validation.OptionalPositiveFinite(p.TailLength, "tail_length")
	if err != nil {
		return Animal{}, err
	}
	height, err := validation.OptionalPositiveFinite(p.Height, "height")
	if err != nil {
		return Animal{}, err
	}
	bodyLength, err := validation.OptionalPositiveFinite(p.BodyLength, "body_length")
	if err != nil {
		return Animal{}, err
	}

	a.Species = species
	a.TailLength = tailLength
	a.Height = height
	a.BodyLength = bodyLength

	return a, nil
}

// Record возвращает документное представление животного. Дискриминатор
// animal_type всегда присутствует; морфометрические поля обезьяны
// включаются только когда заданы.
func (a Animal) Record() Record {
	r := Record{
		"name":                a.Name,
		"animal_type":         string(a.Type),
		"gender":              a.Gender,
		"age":                 a.Age,
		"weight":              a.Weight,
		"acquisition_date":    a.AcquisitionDate,
		"acquisition_country": a.AcquisitionCountry,
		"training_status":     a.TrainingStatus,
		"reserved":            a.Reserved,
		"in_service_country":  a.InServiceCountry,
	}

	switch a.Type {
	case AnimalTypeDog:
		r["breed"] = a.Breed
	case AnimalTypeMonkey:
		r["species"] = a.Species
		if a.TailLength != nil {
			r["tail_length"] = *a.TailLength
		}
		if a.Height != nil {
			r["height"] = *a.Height
		}
		if a.BodyLength != nil {
			r["body_length"] = *a.BodyLength
		}
	}

	return r
}

// AnimalFromRecord восстанавливает животное из документа хранилища.
// Все поля валидируются как при создании; единственное исключение —
// acquisition_date: сохранённая дата перекрывает свежесгенерированную,
// чтобы круговое преобразование не теряло исходное значение.
func AnimalFromRecord(r Record) (Animal, error) {
	age, err := validation.IntValue(r["age"], "age")
	if err != nil {
		return Animal{}, err
	}
	weight, err := validation.FloatValue(r["weight"], "weight")
	if err != nil {
		return Animal{}, err
	}
	reserved, err := validation.BoolValue(r["reserved"], "reserved")
	if err != nil {
		return Animal{}, err
	}

	base := BaseParams{
		Name:               stringValue(r, "name"),
		Gender:             stringValue(r, "gender"),
		Age:                age,
		Weight:             weight,
		AcquisitionCountry: stringValue(r, "acquisition_country"),
		TrainingStatus:     stringValue(r, "training_status"),
		Reserved:           reserved,
		InServiceCountry:   stringValue(r, "in_service_country"),
	}

	var a Animal
	switch AnimalType(stringValue(r, "animal_type")) {
	case AnimalTypeDog:
		a, err = NewDog(DogParams{BaseParams: base, Breed: stringValue(r, "breed")})
	case AnimalTypeMonkey:
		var tailLength, height, bodyLength *float64
		if tailLength, err = optionalFloat(r, "tail_length"); err != nil {
			return Animal{}, err
		}
		if height, err = optionalFloat(r, "height"); err != nil {
			return Animal{}, err
		}
		if bodyLength, err = optionalFloat(r, "body_length"); err != nil {
			return Animal{}, err
		}
		a, err = NewMonkey(MonkeyParams{
			BaseParams: base,
			Species:    stringValue(r, "species"),
			TailLength: tailLength,
			Height:     height,
			BodyLength: bodyLength,
		})
	default:
		return Animal{}, validation.NewFieldError("animal_type", "must be 'Dog' or 'Monkey'")
	}
	if err != nil {
		return Animal{}, err
	}

	if d, ok := r["acquisition_date"].(string); ok && strings.TrimSpace(d) != "" {
		a.AcquisitionDate = d
	}

	return a, nil
}

func stringValue(r Record, key string) string {
	s, _ := r[key].(string)
	return s
}

func optionalFloat(r Record, key string) (*float64, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, nil
	}
	f, err := validation.FloatValue(v, key)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
