package i18n

var koreanTranslations = map[string]string{
	// Spreadsheet validation
	"validate.success":         "파일 검증 성공",
	"validate.missing_columns": "필수 컬럼이 없습니다: %s",
	"validate.invalid_dates":   "잘못된 날짜 형식이 있습니다:\n%s",
	"validate.mixed_months":    "생년월일이 여러 달에 걸쳐 있습니다: %s",
	"validate.read_failed":     "파일 읽기 오류: %s",

	// Rendering
	"render.invalid_month":        "월 값이 올바르지 않습니다: %d",
	"render.empty_people":         "생일자 데이터가 비어있습니다",
	"render.invalid_person":       "필수 필드가 누락되었습니다 (%d번째 생일자): %s",
	"render.month_mismatch":       "생일 월이 일치하지 않습니다 (%d번째 생일자 %s): %d월",
	"render.template_slides":      "템플릿 슬라이드가 부족합니다: %d개 (최소 2개 필요)",
	"render.template_not_found":   "템플릿 파일을 찾을 수 없습니다: %s",
	"render.template_unreadable":  "템플릿 분석 실패: %s",
	"render.title_failed":         "타이틀 슬라이드 수정 오류: %s",
	"render.slide_failed":         "슬라이드 생성 오류: %s",
	"render.color_copy_failed":    "글자 색 복사 실패 (%s): %v",
	"render.template_removed":     "템플릿 슬라이드 제거됨",
	"render.text_replaced":        "텍스트 교체: %s -> %s",
	"render.start":                "PPT 생성 시작: 월=%d, 생일자 수=%d, 저장 경로=%s",

	// Saving
	"save.path_not_found": "저장 경로가 존재하지 않습니다: %s",
	"save.not_directory":  "저장 경로가 폴더가 아닙니다: %s",
	"save.not_writable":   "저장 경로에 쓰기 권한이 없습니다: %s",
	"save.failed":         "파일 저장 실패: %s",
	"save.done":           "파일 저장 완료: %s",

	// Generation result
	"generate.success": "PPT 파일이 생성되었습니다: %s",
	"generate.failed":  "PPT 생성 실패: %s",

	// Template inspection
	"inspect.slide_count": "템플릿 슬라이드 수: %d",
	"inspect.slide":       "슬라이드 %d 분석:",
	"inspect.layout":      "- 레이아웃: %s",
	"inspect.shapes":      "- 도형 목록:",
	"inspect.shape":       "  도형 %d:",
	"inspect.shape_type":  "    유형: %s",
	"inspect.shape_name":  "    이름: %s",
	"inspect.shape_text":  "    텍스트: %s",
	"inspect.shape_color": "    색: %s",

	// Desktop app
	"app.title":              "생일 PPT 생성기",
	"app.select_excel_title": "엑셀 파일 선택",
	"app.select_save_title":  "PPT 저장 위치 선택",
	"app.excel_filter":       "Excel Files (*.xlsx, *.xls)",
	"app.no_excel":           "엑셀 파일을 선택해주세요.",
	"app.no_save_dir":        "저장 위치를 선택해주세요.",
	"app.no_birthdays":       "생일자 데이터가 없습니다.",
	"app.reading_excel":      "엑셀 파일 읽는 중...",
	"app.generating":         "PPT 생성 중...",
	"app.done":               "PPT 생성 완료",
	"app.failed":             "PPT 생성 실패",
	"app.excel_failed":       "엑셀 파일 처리 실패",
	"app.no_data":            "데이터 없음",
	"app.month_detected":     "%d월",
	"app.save_selected":      "저장 위치가 선택되었습니다: %s",
	"app.dialog_error":       "오류",
	"app.dialog_warning":     "경고",
	"app.dialog_info":        "알림",
	"app.dialog_done":        "완료",
	"app.file_created":       "PPT 파일이 생성되었습니다.",
	"app.template_title":     "기본 템플릿 저장",
	"app.template_filter":    "PowerPoint Files (*.pptx)",
	"app.template_saved":     "기본 템플릿을 저장했습니다: %s",
	"app.template_failed":    "템플릿 저장 실패: %s",

	"menu.file":          "파일",
	"menu.save_template": "기본 템플릿 저장...",
	"menu.exit":          "종료",
	"menu.about":         "엑셀 생일자 명단으로 생일 축하 PPT 를 만듭니다",
}
