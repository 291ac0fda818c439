package i18n

var NoRows = NewTable(map[Code]string{
	Arabic:  "من فضلك قم بتحديد بعض الصفوف.",
	German:  "Bitte wählen Sie einige Zeilen aus.",
	Spanish: "Por favor, selecciona algunas filas.",
	English: "Please select some rows.",
	French:  "Veuillez sélectionner quelques lignes.",
})

var ConfirmDelete = NewTable(map[Code]string{
	Arabic:  "هل ترغب حقًا في حذف جميع السجلات المحددة؟",
	German:  "Möchten Sie wirklich alle ausgewählten Datensätze löschen?",
	Spanish: "¿Realmente deseas eliminar todos los registros seleccionados?",
	English: "Do you really want to delete all the selected records?",
	French:  "Voulez-vous vraiment supprimer tous les enregistrements sélectionnés?",
})

var ConfirmApprove = NewTable(map[Code]string{
	Arabic:  "هل ترغب حقًا في الموافقة على جميع الطلبات المحددة؟",
	German:  "Möchten Sie wirklich alle ausgewählten Anfragen genehmigen?",
	Spanish: "¿Realmente deseas aprobar todas las solicitudes seleccionadas?",
	English: "Do you really want to approve all the selected requests?",
	French:  "Voulez-vous vraiment approuver toutes les demandes sélectionnées?",
})

var ConfirmReject = NewTable(map[Code]string{
	Arabic:  "هل ترغب حقًا في رفض جميع الطلبات المحددة؟",
	German:  "Möchten Sie wirklich alle ausgewählten Anfragen ablehnen?",
	Spanish: "¿Realmente deseas rechazar todas las solicitudes seleccionadas?",
	English: "Do you really want to reject all the selected requests?",
	French:  "Voulez-vous vraiment rejeter toutes les demandes sélectionnées?",
})

var ConfirmArchive = NewTable(map[Code]string{
	Arabic:  "هل ترغب حقًا في أرشفة جميع السجلات المحددة؟",
	German:  "Möchten Sie wirklich alle ausgewählten Datensätze archivieren?",
	Spanish: "¿Realmente deseas archivar todos los registros seleccionados?",
	English: "Do you really want to archive all the selected records?",
	French:  "Voulez-vous vraiment archiver tous les enregistrements sélectionnés?",
})

var ConfirmUnarchive = NewTable(map[Code]string{
	Arabic:  "هل ترغب حقًا في إلغاء أرشفة جميع السجلات المحددة؟",
	German:  "Möchten Sie wirklich alle ausgewählten Datensätze dearchivieren?",
	Spanish: "¿Realmente deseas desarchivar todos los registros seleccionados?",
	English: "Do you really want to unarchive all the selected records?",
	French:  "Voulez-vous vraiment désarchiver tous les enregistrements sélectionnés?",
})

var ConfirmExport = NewTable(map[Code]string{
	Arabic:  "هل ترغب في تنزيل السجلات المحددة كملف Excel؟",
	German:  "Möchten Sie die ausgewählten Datensätze als Excel-Datei herunterladen?",
	Spanish: "¿Deseas descargar los registros seleccionados como archivo Excel?",
	English: "Do you want to download the selected records as an Excel file?",
	French:  "Voulez-vous télécharger les enregistrements sélectionnés sous forme de fichier Excel?",
})

var SuccessDelete = NewTable(map[Code]string{
	Arabic:  "تم حذف %d سجل بنجاح.",
	German:  "%d Datensätze erfolgreich gelöscht.",
	Spanish: "%d registros eliminados correctamente.",
	English: "%d records deleted successfully.",
	French:  "%d enregistrements supprimés avec succès.",
})

var SuccessApprove = NewTable(map[Code]string{
	Arabic:  "تمت الموافقة على %d طلب بنجاح.",
	German:  "%d Anfragen erfolgreich genehmigt.",
	Spanish: "%d solicitudes aprobadas correctamente.",
	English: "%d requests approved successfully.",
	French:  "%d demandes approuvées avec succès.",
})

var SuccessReject = NewTable(map[Code]string{
	Arabic:  "تم رفض %d طلب بنجاح.",
	German:  "%d Anfragen erfolgreich abgelehnt.",
	Spanish: "%d solicitudes rechazadas correctamente.",
	English: "%d requests rejected successfully.",
	French:  "%d demandes rejetées avec succès.",
})

var SuccessArchive = NewTable(map[Code]string{
	Arabic:  "تمت أرشفة %d سجل بنجاح.",
	German:  "%d Datensätze erfolgreich archiviert.",
	Spanish: "%d registros archivados correctamente.",
	English: "%d records archived successfully.",
	French:  "%d enregistrements archivés avec succès.",
})

var SuccessUnarchive = NewTable(map[Code]string{
	Arabic:  "تم إلغاء أرشفة %d سجل بنجاح.",
	German:  "%d Datensätze erfolgreich dearchiviert.",
	Spanish: "%d registros desarchivados correctamente.",
	English: "%d records unarchived successfully.",
	French:  "%d enregistrements désarchivés avec succès.",
})

var SuccessExport = NewTable(map[Code]string{
	Arabic:  "تم تنزيل الملف %s.",
	German:  "Datei %s heruntergeladen.",
	Spanish: "Archivo %s descargado.",
	English: "Downloaded %s.",
	French:  "Fichier %s téléchargé.",
})

var ActionFailed = NewTable(map[Code]string{
	Arabic:  "تعذر إكمال العملية: %s",
	German:  "Die Aktion konnte nicht abgeschlossen werden: %s",
	Spanish: "No se pudo completar la acción: %s",
	English: "The action could not be completed: %s",
	French:  "L'action n'a pas pu être effectuée : %s",
})

var ConfirmButton = NewTable(map[Code]string{
	Arabic:  "تأكيد",
	German:  "Bestätigen",
	Spanish: "Confirmar",
	English: "Confirm",
	French:  "Confirmer",
})

var CancelButton = NewTable(map[Code]string{
	Arabic:  "إلغاء",
	German:  "Abbrechen",
	Spanish: "Cancelar",
	English: "Cancel",
	French:  "Annuler",
})

var SelectedBadge = NewTable(map[Code]string{
	Arabic:  "%d محدد",
	German:  "%d ausgewählt",
	Spanish: "%d seleccionados",
	English: "%d selected",
	French:  "%d sélectionnés",
})

// confirmations indexes the confirmation text of each bulk action by action key.
var confirmations = map[string]Table{
	"delete":    ConfirmDelete,
	"approve":   ConfirmApprove,
	"reject":    ConfirmReject,
	"archive":   ConfirmArchive,
	"unarchive": ConfirmUnarchive,
	"export":    ConfirmExport,
}

var successes = map[string]Table{
	"delete":    SuccessDelete,
	"approve":   SuccessApprove,
	"reject":    SuccessReject,
	"archive":   SuccessArchive,
	"unarchive": SuccessUnarchive,
	"export":    SuccessExport,
}

// Confirmation returns the confirmation table of an action key.
func Confirmation(action string) (Table, bool) {
	t, ok := confirmations[action]
	return t, ok
}

// Success returns the success-toast table of an action key.
func Success(action string) (Table, bool) {
	t, ok := successes[action]
	return t, ok
}
