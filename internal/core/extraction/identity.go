package extraction

import (
	"github.com/tavalos/papeleo/internal/core/domain"
)

// extractIdentity runs the identity table with scored candidate selection,
// then normalizes names, dates, sexo and nacionalidad. A passport declared
// by the caller keeps its type even when the layout looks like a DNI.
func extractIdentity(lib *Library, declared domain.DocumentType, text string) domain.IdentityFields {
	values := scoredValues(lib.FieldsFor(domain.TypeDNI), text, scoreIdentity)

	f := domain.IdentityFields{
		Tipo:               lib.DetectIdentitySubtype(text),
		NumeroDNI:          values["numero_dni"],
		Apellido:           CleanPersonName(values["apellido"]),
		Nombre:             CleanPersonName(values["nombre"]),
		Sexo:               CleanSexo(values["sexo"]),
		FechaNacimiento:    NormalizeDate(values["fecha_nacimiento"]),
		LugarNacimiento:    values["lugar_nacimiento"],
		Nacionalidad:       CleanNacionalidad(values["nacionalidad"]),
		FechaEmision:       NormalizeDate(values["fecha_emision"]),
		FechaVencimiento:   NormalizeDate(values["fecha_vencimiento"]),
		LugarEmision:       values["lugar_emision"],
		NumeroTramite:      values["numero_tramite"],
		CodigoVerificacion: values["codigo_verificacion"],
		Domicilio:          values["domicilio"],
		EstadoCivil:        values["estado_civil"],
		Profesion:          values["profesion"],
	}
	if declared == domain.TypePasaporte {
		f.Tipo = domain.TypePasaporte
	}
	return f
}
