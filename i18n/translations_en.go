package i18n

var englishTranslations = map[string]string{
	// Spreadsheet validation
	"validate.success":         "File validated",
	"validate.missing_columns": "Missing required columns: %s",
	"validate.invalid_dates":   "Invalid birth date format:\n%s",
	"validate.mixed_months":    "Birth dates span several months: %s",
	"validate.read_failed":     "Failed to read file: %s",

	// Rendering
	"render.invalid_month":        "Invalid month: %d",
	"render.empty_people":         "No birthday people to render",
	"render.invalid_person":       "Missing required fields (person #%d): %s",
	"render.month_mismatch":       "Birth month does not match (person #%d %s): month %d",
	"render.template_slides":      "Template has %d slide(s); at least 2 are required",
	"render.template_not_found":   "Template file not found: %s",
	"render.template_unreadable":  "Failed to analyze template: %s",
	"render.title_failed":         "Failed to update title slide: %s",
	"render.slide_failed":         "Failed to create slide: %s",
	"render.color_copy_failed":    "Failed to copy font color (%s): %v",
	"render.template_removed":     "Template slide removed",
	"render.text_replaced":        "Text replaced: %s -> %s",
	"render.start":                "Generating PPT: month=%d, people=%d, save path=%s",

	// Saving
	"save.path_not_found": "Save path does not exist: %s",
	"save.not_directory":  "Save path is not a directory: %s",
	"save.not_writable":   "Save path is not writable: %s",
	"save.failed":         "Failed to save file: %s",
	"save.done":           "File saved: %s",

	// Generation result
	"generate.success": "PPT file created: %s",
	"generate.failed":  "PPT generation failed: %s",

	// Template inspection
	"inspect.slide_count": "Template slides: %d",
	"inspect.slide":       "Slide %d:",
	"inspect.layout":      "- Layout: %s",
	"inspect.shapes":      "- Shapes:",
	"inspect.shape":       "  Shape %d:",
	"inspect.shape_type":  "    Type: %s",
	"inspect.shape_name":  "    Name: %s",
	"inspect.shape_text":  "    Text: %s",
	"inspect.shape_color": "    Color: %s",

	// Desktop app
	"app.title":              "Birthday PPT Generator",
	"app.select_excel_title": "Select Excel File",
	"app.select_save_title":  "Select PPT Save Location",
	"app.excel_filter":       "Excel Files (*.xlsx, *.xls)",
	"app.no_excel":           "Please select an Excel file.",
	"app.no_save_dir":        "Please select a save location.",
	"app.no_birthdays":       "No birthday data found.",
	"app.reading_excel":      "Reading Excel file...",
	"app.generating":         "Generating PPT...",
	"app.done":               "PPT generated",
	"app.failed":             "PPT generation failed",
	"app.excel_failed":       "Failed to process Excel file",
	"app.no_data":            "No data",
	"app.month_detected":     "Month %d",
	"app.save_selected":      "Save location selected: %s",
	"app.dialog_error":       "Error",
	"app.dialog_warning":     "Warning",
	"app.dialog_info":        "Notice",
	"app.dialog_done":        "Done",
	"app.file_created":       "The PPT file has been created.",
	"app.template_title":     "Save Bundled Template",
	"app.template_filter":    "PowerPoint Files (*.pptx)",
	"app.template_saved":     "Bundled template saved: %s",
	"app.template_failed":    "Failed to save template: %s",

	"menu.file":          "File",
	"menu.save_template": "Save Bundled Template...",
	"menu.exit":          "Exit",
	"menu.about":         "Birthday slide decks from a spreadsheet",
}
